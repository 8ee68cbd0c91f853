package config

import "os"

// Environment identifies the deployment environment the app is running in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads the ENV variable, defaulting to development.
func GetEnvironment() Environment {
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "ci":
		return CI
	case "test":
		return Test
	default:
		return Development
	}
}
