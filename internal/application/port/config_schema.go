package port

// ConfigSchemaProvider provides the JSON schema of the configuration file.
type ConfigSchemaProvider interface {
	// Schema returns the schema document.
	Schema() ([]byte, error)
	// ConfigFile returns the path of the active configuration file.
	ConfigFile() string
}
