package model

// FieldFilter is one atomic predicate of a retrieval filter.
type FieldFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"` // one of OpGTE, OpLTE, OpEQ
	Value    any    `json:"value"`
}

// FilterExpression is a conjunction of field predicates passed to the
// retrieval store alongside the similarity vector. An empty expression
// matches everything. Disjunctions are never produced.
type FilterExpression []FieldFilter
