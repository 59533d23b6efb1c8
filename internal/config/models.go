package config

// IMAPConfig represents the configuration for the mail store connection
type IMAPConfig struct {
	Address            string
	Username           string
	Password           string
	Mailbox            string
	DaysBack           int
	InsecureSkipVerify bool
}

// InferenceConfig represents the configuration for an HTTP inference backend
type InferenceConfig struct {
	BaseURL string
	Timeout string
}

// LLMConfig represents the configuration for the optional LLM backend
type LLMConfig struct {
	Enabled  bool
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// TranslationConfig represents the configuration for the translation layer
type TranslationConfig struct {
	Enabled    bool
	BaseURL    string
	TargetLang string
	Timeout    string
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Address:            c.GetString("imap.address"),
		Username:           c.GetString("imap.username"),
		Password:           c.GetString("imap.password"),
		Mailbox:            c.GetString("imap.mailbox"),
		DaysBack:           c.GetInt("imap.days_back"),
		InsecureSkipVerify: c.GetBool("imap.insecure_skip_verify"),
	}
}

// GetTransformer returns the transformer backend configuration
func (c *Config) GetTransformer() InferenceConfig {
	return InferenceConfig{
		BaseURL: c.GetString("models.transformer.base_url"),
		Timeout: c.GetString("models.transformer.timeout"),
	}
}

// GetSVM returns the SVM backend configuration
func (c *Config) GetSVM() InferenceConfig {
	return InferenceConfig{
		BaseURL: c.GetString("models.svm.base_url"),
		Timeout: c.GetString("models.svm.timeout"),
	}
}

// GetLLM returns the LLM backend configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Enabled:  c.GetBool("models.llm.enabled"),
		Provider: c.GetString("models.llm.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetTranslation returns the translation layer configuration
func (c *Config) GetTranslation() TranslationConfig {
	return TranslationConfig{
		Enabled:    c.GetBool("translation.enabled"),
		BaseURL:    c.GetString("translation.base_url"),
		TargetLang: c.GetString("translation.target_lang"),
		Timeout:    c.GetString("translation.timeout"),
	}
}
