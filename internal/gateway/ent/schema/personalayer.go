package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"time"
)

// PersonaLayer holds the schema definition for the PersonaLayer entity.
type PersonaLayer struct {
	ent.Schema
}

// Fields of the PersonaLayer.
func (PersonaLayer) Fields() []ent.Field {
	return []ent.Field{
		field.String("persona_id").
			NotEmpty(),
		field.String("layer").
			NotEmpty(),
		field.JSON("payload", map[string]any{}).
			Default(map[string]any{}),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the PersonaLayer.
func (PersonaLayer) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("persona_id", "layer").
			Unique(),
	}
}
