package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Analysis.BaseURL == "" {
		cfg.Analysis.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Analysis.Model == "" {
		cfg.Analysis.Model = "gpt-4o-mini"
	}
	if cfg.Analysis.MaxInputChars == 0 {
		cfg.Analysis.MaxInputChars = 15000
	}
	if cfg.Analysis.MinDocumentChars == 0 {
		cfg.Analysis.MinDocumentChars = 50
	}
	if cfg.Analysis.Language == "" {
		cfg.Analysis.Language = "English"
	}
	if cfg.Export.Directory == "" {
		cfg.Export.Directory = "/usr/local/var/keiyaku/exports"
	}
	if cfg.Intake.Extensions == nil {
		cfg.Intake.Extensions = []string{".txt", ".pdf", ".docx"}
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Intake.Directories) > 0 && cfg.Intake.Recursive == nil {
		t := true
		cfg.Intake.Recursive = &t
	}
}
