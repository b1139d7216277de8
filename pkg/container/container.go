package container

import (
	"os"
	"strings"
)

// IsContainerised reports whether the process looks like it runs inside a
// container (Docker, containerd or Kubernetes).
func IsContainerised() bool {
	return hasDockerEnvFile() || isInContainerCGroup() || isInKubernetesPod()
}

// IsLoopback reports whether host names the local machine. Inside a
// container that is the container itself, not the host running llama-server.
func IsLoopback(host string) bool {
	switch strings.ToLower(strings.Trim(host, "[]")) {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return strings.HasPrefix(host, "127.")
}

func hasDockerEnvFile() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

func isInContainerCGroup() bool {
	data, err := os.ReadFile("/proc/1/cgroup")
	if err != nil {
		return false
	}
	content := string(data)
	return strings.Contains(content, "docker") ||
		strings.Contains(content, "containerd") ||
		strings.Contains(content, "kubepods")
}

func isInKubernetesPod() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}
