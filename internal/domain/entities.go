package domain

// EntityDescriptor declares one administrative reference entity: its routing
// tag, table and the data columns a caller may set. Storage builds SQL from
// descriptors only, never from request input, so there is no runtime
// reflection over models.
type EntityDescriptor struct {
	Tag     string
	Table   string
	Columns []string
}

// EntityRecord is one row of a descriptor's table. Values is keyed by the
// descriptor's column names.
type EntityRecord struct {
	Id     string
	Values map[string]string
}

// Entities is the registry of every entity exposed through the admin CRUD
// surface. Adding an entity means adding a row here and a table to the schema.
var Entities = map[string]EntityDescriptor{
	"skill":       {Tag: "skill", Table: "skill", Columns: []string{"skill_name"}},
	"project":     {Tag: "project", Table: "project", Columns: []string{"project_name"}},
	"designation": {Tag: "designation", Table: "designation", Columns: []string{"desg_name"}},
	"competency":  {Tag: "competency", Table: "competency", Columns: []string{"comp_name"}},
	"role":        {Tag: "role", Table: "role", Columns: []string{"role_name"}},
	"permission":  {Tag: "permission", Table: "permission", Columns: []string{"name", "operation"}},
}
