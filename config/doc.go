// Package config loads the audioscribe configuration.
//
// Values come from, in increasing precedence, a config.yml file, a .env file
// and the process environment. Viper reads the YAML, godotenv the .env file,
// and every environment variable is bound under each nested key it could
// denote, so OPENAI_API_KEY fills openai.api_key.
//
// The result is one explicit Config value. Nothing below cmd/ reads the
// environment; components receive the parts of Config they need.
//
// # Usage
//
//	cfg, err := config.Load("audioscribe")
//	if err != nil {
//	    return err
//	}
package config
