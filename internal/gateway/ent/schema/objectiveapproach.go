package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"time"
)

// ObjectiveApproach holds the schema definition for the ObjectiveApproach
// entity, the per-objective methodology record.
type ObjectiveApproach struct {
	ent.Schema
}

// Fields of the ObjectiveApproach.
func (ObjectiveApproach) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("objective_id").
			Unique().
			Immutable(),
		field.String("approach").
			NotEmpty(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
