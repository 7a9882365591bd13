package config

// SchemaProvider implements port.ConfigSchemaProvider for a Manager.
type SchemaProvider struct {
	manager *Manager
}

// NewSchemaProvider creates a schema provider; a nil manager reports the
// default config file location.
func NewSchemaProvider(manager *Manager) *SchemaProvider {
	return &SchemaProvider{manager: manager}
}

// Schema returns the JSON schema of the configuration file.
func (*SchemaProvider) Schema() ([]byte, error) {
	return Schema()
}

// ConfigFile returns the active configuration file path.
func (p *SchemaProvider) ConfigFile() string {
	if p.manager != nil {
		return p.manager.GetConfigFile()
	}
	path, err := GetConfigFile()
	if err != nil {
		return ""
	}
	return path
}
