package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"time"
)

// Exploration holds the schema definition for the Exploration entity.
type Exploration struct {
	ent.Schema
}

// Fields of the Exploration.
func (Exploration) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("objective_id").
			Unique().
			Immutable(),
		field.String("workspace_id").
			Default(""),
		field.String("title").
			Default(""),
		field.String("research_approach").
			Default(""),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the Exploration.
func (Exploration) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("sections", GuideSection.Type),
	}
}
