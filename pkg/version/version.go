package version

import (
	"fmt"
	"runtime"
)

// Project is the name reported in version output and the API user agent.
const Project = "email-provider-mailchimp"

var (
	// Set with -ldflags "-X go.miloapis.com/email-provider-mailchimp/pkg/version.Version=..."
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Project    string `json:"project"`
	Version    string `json:"version"`
	GitCommit  string `json:"gitCommit"`
	BuildDate  string `json:"buildDate"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
	APIVersion string `json:"apiVersion"`
}

// Get returns version information
func Get() Info {
	return Info{
		Project:    Project,
		Version:    Version,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		APIVersion: "2.0",
	}
}

// UserAgent is sent with every MailChimp API request.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s)", Project, Version, runtime.GOOS, runtime.GOARCH)
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s\nPlatform: %s\nMailChimp API: %s",
		i.Project, i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform, i.APIVersion)
}
