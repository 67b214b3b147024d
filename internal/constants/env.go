// Where: cli/internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Container Configuration
	EnvDockerCLI     = "SLS_DOCKER_CLI"
	DefaultDockerCLI = "docker"

	// Invocation
	EnvStage     = "SLS_STAGE"
	EnvConfigDir = "SLS_DART_CONFIG"

	// Publish Credentials
	EnvAWSRegion       = "AWS_REGION"
	EnvPublishAccess   = "SLS_DART_ACCESS_KEY"
	EnvPublishSecret   = "SLS_DART_SECRET_KEY"
	EnvPublishEndpoint = "SLS_DART_ENDPOINT"
)
