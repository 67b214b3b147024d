// Where: cli/internal/container/docker.go
// What: Docker SDK helpers for build preflight.
// Why: Tell the operator up front when the toolchain image is not present locally.
package container

import (
	"context"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// DockerClient defines the subset of Docker SDK methods used by this package.
// This interface enables mocking the Docker client in tests.
type DockerClient interface {
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
}

// NewDockerClient constructs a Docker SDK client using environment defaults.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// ImageChecker looks up images in the local daemon. It never pulls.
type ImageChecker struct {
	Client DockerClient
}

// Present reports whether ref (image:tag) is tagged locally.
func (c ImageChecker) Present(ctx context.Context, ref string) (bool, error) {
	if c.Client == nil {
		return false, errDockerClientNil
	}
	images, err := c.Client.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return false, err
	}
	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == ref {
				return true, nil
			}
		}
	}
	return false, nil
}
