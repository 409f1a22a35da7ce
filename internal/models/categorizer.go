package models

// CategoryConfig is one entry of the taxonomy YAML file.
type CategoryConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// CategoriesConfig is the top-level shape of the taxonomy YAML file:
//
//	categories:
//	  - name: groceries
//	  - name: transport
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
