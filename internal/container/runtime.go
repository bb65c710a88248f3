// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and service
// supervision for the Gotenberg conversion service.
package container

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides container operations: checking availability,
// verifying images, and running a detached service container.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// ContainerRunning reports whether a container with the given name
	// is currently running.
	ContainerRunning(name string) bool

	// StartDetached launches a named, detached container with a
	// host:container port mapping, e.g. "3000:3000".
	StartDetached(image, name, portMap string) error

	// StartExisting restarts a stopped container by name.
	StartExisting(name string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Output(name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

// runtime implements Runtime for a specific container binary. Docker
// and Podman share the same logic; they differ only in binary name and
// the subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) ContainerRunning(name string) bool {
	out, err := r.exec.Output(r.bin, "ps", "--filter", "name="+name, "--format", "{{.Names}}")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == name {
			return true
		}
	}
	return false
}

func (r *runtime) StartDetached(image, name, portMap string) error {
	args := []string{"run", "-d", "--name", name, "-p", portMap, image}
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("starting %s container %s: %w", r.bin, name, err)
	}
	return nil
}

func (r *runtime) StartExisting(name string) error {
	if err := r.exec.RunSilent(r.bin, "start", name); err != nil {
		return fmt.Errorf("restarting container %s: %w", name, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an
// error if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}

// Gotenberg service defaults, matching the conversion stage's
// expectations.
const (
	GotenbergImage     = "gotenberg/gotenberg:8"
	GotenbergContainer = "dst-gotenberg"
	GotenbergPortMap   = "3000:3000"
)

// EnsureGotenberg makes sure the Gotenberg container is running:
// already-running is a no-op, a stopped container is restarted, and
// otherwise a fresh detached container is launched.
func EnsureGotenberg(rt Runtime) error {
	if rt.ContainerRunning(GotenbergContainer) {
		return nil
	}
	if err := rt.StartExisting(GotenbergContainer); err == nil {
		return nil
	}
	if err := rt.ImageExists(GotenbergImage); err != nil {
		return fmt.Errorf("gotenberg image not available in %s: %w", rt.Name(), err)
	}
	return rt.StartDetached(GotenbergImage, GotenbergContainer, GotenbergPortMap)
}
