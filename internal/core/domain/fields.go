package domain

// WeightedField is a searchable document field with its relevance weight.
type WeightedField struct {
	Path   string
	Weight float64
}

// HighlightField is a field eligible for excerpt highlighting.
type HighlightField struct {
	Path         string
	FragmentSize int
	MaxFragments int
}

// RecencyField is the timestamp used as the relevance tie-breaker and as the
// ordering for match-everything queries. Every indexed document carries it.
const RecencyField = "created_at"

// CustomFieldsGroup is the wildcard group for user-defined custom attributes.
const CustomFieldsGroup = "custom_fields.*"

// searchFields is the static registry of weighted search fields per entity
// type. The registry is compiled in; the indexing pipeline owns the schema.
var searchFields = map[EntityType][]WeightedField{
	EntityTypeCase: {
		{Path: "case_number", Weight: 4},
		{Path: "summary", Weight: 3},
		{Path: "description", Weight: 2},
		{Path: "category", Weight: 1},
		{Path: "parties.name", Weight: 2},
		{Path: "comments.body", Weight: 1},
		{Path: "outcome", Weight: 1},
	},
	EntityTypeInvestigation: {
		{Path: "title", Weight: 3},
		{Path: "summary", Weight: 2},
		{Path: "findings", Weight: 2},
		{Path: "notes.body", Weight: 1},
		{Path: "investigator_name", Weight: 1},
	},
	EntityTypeDisclosure: {
		{Path: "title", Weight: 3},
		{Path: "description", Weight: 2},
		{Path: "disclosure_type", Weight: 1},
		{Path: "respondent.name", Weight: 2},
	},
	EntityTypePolicy: {
		{Path: "title", Weight: 4},
		{Path: "body", Weight: 2},
		{Path: "tags", Weight: 2},
		{Path: "version_notes", Weight: 1},
	},
	EntityTypeCampaign: {
		{Path: "name", Weight: 4},
		{Path: "description", Weight: 2},
		{Path: "audience", Weight: 1},
		{Path: "messages.subject", Weight: 1},
	},
	EntityTypeInteraction: {
		{Path: "reference_number", Weight: 4},
		{Path: "summary", Weight: 3},
		{Path: "transcript", Weight: 2},
		{Path: "channel", Weight: 1},
		{Path: "operator_notes", Weight: 1},
	},
}

var highlightFields = map[EntityType][]HighlightField{
	EntityTypeCase: {
		{Path: "summary", FragmentSize: 160, MaxFragments: 3},
		{Path: "description", FragmentSize: 160, MaxFragments: 3},
		{Path: "comments.body", FragmentSize: 120, MaxFragments: 2},
	},
	EntityTypeInvestigation: {
		{Path: "summary", FragmentSize: 160, MaxFragments: 3},
		{Path: "findings", FragmentSize: 160, MaxFragments: 3},
	},
	EntityTypeDisclosure: {
		{Path: "title", FragmentSize: 120, MaxFragments: 1},
		{Path: "description", FragmentSize: 160, MaxFragments: 3},
	},
	EntityTypePolicy: {
		{Path: "title", FragmentSize: 120, MaxFragments: 1},
		{Path: "body", FragmentSize: 200, MaxFragments: 3},
	},
	EntityTypeCampaign: {
		{Path: "name", FragmentSize: 120, MaxFragments: 1},
		{Path: "description", FragmentSize: 160, MaxFragments: 2},
	},
	EntityTypeInteraction: {
		{Path: "summary", FragmentSize: 160, MaxFragments: 3},
		{Path: "transcript", FragmentSize: 200, MaxFragments: 3},
	},
}

// SearchFields returns the weighted search fields for an entity type, with
// the custom-attribute wildcard group appended when requested.
func SearchFields(entityType EntityType, includeCustomFields bool) []WeightedField {
	fields := searchFields[entityType]
	out := make([]WeightedField, len(fields), len(fields)+1)
	copy(out, fields)
	if includeCustomFields {
		out = append(out, WeightedField{Path: CustomFieldsGroup, Weight: 1})
	}
	return out
}

// HighlightFields returns the excerpt-eligible fields for an entity type.
func HighlightFields(entityType EntityType) []HighlightField {
	fields := highlightFields[entityType]
	out := make([]HighlightField, len(fields))
	copy(out, fields)
	return out
}

// SuggestField is the title-like field used by the prefix-suggestion
// endpoint for each entity type.
func SuggestField(entityType EntityType) string {
	switch entityType {
	case EntityTypeCase:
		return "summary"
	case EntityTypeCampaign:
		return "name"
	case EntityTypeInteraction:
		return "summary"
	default:
		return "title"
	}
}
