package record

// Record types understood by the pipeline. A record of any other type is
// dropped during classification.
const (
	TypeChoose  = "choose"
	TypeUsing   = "using"
	TypeRewards = "rewards"
)

// Field names with pipeline-level meaning. Every other field in a record
// is an opaque application property, preserved verbatim.
const (
	FieldProjectName = "project_name"
	FieldType        = "record_type"
	FieldModel       = "model"
)

func validType(t string) bool {
	switch t {
	case TypeChoose, TypeUsing, TypeRewards:
		return true
	default:
		return false
	}
}

// typeUsesModel reports whether records of type t carry a model name,
// which then becomes part of the destination key.
func typeUsesModel(t string) bool {
	return t == TypeChoose || t == TypeUsing
}
