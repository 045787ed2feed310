// Package storage provides the composable query options shared by all stores.
package storage

import "fmt"

// Option applies a modification to a Query.
type Option func(Query) Query

// Query holds conditions, ordering, and pagination for store lookups.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
}

// Build creates a Query from a set of options.
func Build(options ...Option) Query {
	q := Query{}
	for _, opt := range options {
		q = opt(q)
	}
	return q
}

// Conditions returns the query conditions.
func (q Query) Conditions() []Condition {
	result := make([]Condition, len(q.conditions))
	copy(result, q.conditions)
	return result
}

// Orders returns the query ordering specifications.
func (q Query) Orders() []Order {
	result := make([]Order, len(q.orders))
	copy(result, q.orders)
	return result
}

// LimitValue returns the limit (0 means no limit).
func (q Query) LimitValue() int {
	return q.limit
}

// OffsetValue returns the offset.
func (q Query) OffsetValue() int {
	return q.offset
}

// Operator identifies the comparison a Condition expresses.
type Operator int

// Operator values.
const (
	OpEqual Operator = iota
	OpGreaterThan
	OpLessThan
	OpIn
)

// String returns the SQL representation of the operator.
func (o Operator) String() string {
	switch o {
	case OpGreaterThan:
		return ">"
	case OpLessThan:
		return "<"
	case OpIn:
		return "IN"
	default:
		return "="
	}
}

// Condition represents a single typed query predicate. Conditions are always
// combined with AND; stores translate them to parameterised SQL, never to
// concatenated strings.
type Condition struct {
	field    string
	operator Operator
	value    any
}

// Field returns the condition field name.
func (c Condition) Field() string { return c.field }

// Operator returns the condition operator.
func (c Condition) Operator() Operator { return c.operator }

// Value returns the condition value.
func (c Condition) Value() any { return c.value }

// String returns a readable representation.
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.field, c.operator, c.value)
}

// Order represents a sort specification.
type Order struct {
	field     string
	ascending bool
}

// Field returns the order field name.
func (o Order) Field() string { return o.field }

// Ascending returns true for ASC, false for DESC.
func (o Order) Ascending() bool { return o.ascending }

// --- Generic options reused across all stores ---

// WithCondition adds a field = value equality condition.
// Domain packages use this to define their own typed options.
func WithCondition(field string, value any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, operator: OpEqual, value: value})
		return q
	}
}

// WithConditionOp adds a condition with an explicit operator.
func WithConditionOp(field string, op Operator, value any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, operator: op, value: value})
		return q
	}
}

// WithConditionIn adds a field IN (values) condition.
func WithConditionIn(field string, values any) Option {
	return func(q Query) Query {
		q.conditions = append(q.conditions, Condition{field: field, operator: OpIn, value: values})
		return q
	}
}

// WithID filters by the "id" column.
func WithID(id int64) Option {
	return WithCondition("id", id)
}

// WithIDIn filters by the "id" column using IN.
func WithIDIn(ids []int64) Option {
	return WithConditionIn("id", ids)
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) Option {
	return func(q Query) Query {
		q.limit = n
		return q
	}
}

// WithOffset sets the result offset.
func WithOffset(n int) Option {
	return func(q Query) Query {
		q.offset = n
		return q
	}
}

// WithOrderAsc adds ascending ordering on a field.
func WithOrderAsc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: true})
		return q
	}
}

// WithOrderDesc adds descending ordering on a field.
func WithOrderDesc(field string) Option {
	return func(q Query) Query {
		q.orders = append(q.orders, Order{field: field, ascending: false})
		return q
	}
}
