package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/mvninspect/internal/app"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	flagMavenScript = "maven-script"
	flagMavenHome   = "maven-home"
	flagSettings    = "user-setting-file"
	flagLocalRepo   = "maven-local-repo"
	flagFormat      = "format"
	flagOffline     = "offline"
	flagNoCache     = "no-cache"
	flagTimings     = "timings"
	flagLogJSON     = "log-json"
)

// inspectOptions validates the flags shared by inspect and watch. On a
// configuration error the usage of cmd is printed to the error stream before
// the error is returned; stdout carries only the report.
func (c *CLI) inspectOptions(cmd *cobra.Command) (app.InspectOptions, error) {
	opts, err := c.resolveOptions()
	if err != nil {
		cmd.PrintErr(cmd.UsageString())
		return app.InspectOptions{}, zerr.Wrap(err, domain.ErrInvalidArguments.Error())
	}
	return opts, nil
}

func (c *CLI) resolveOptions() (app.InspectOptions, error) {
	v := c.config

	descriptor, err := resolveDescriptor(v.GetString(flagMavenScript))
	if err != nil {
		return app.InspectOptions{}, err
	}

	home, err := resolveMavenHome(v.GetString(flagMavenHome))
	if err != nil {
		return app.InspectOptions{}, err
	}

	settings, err := resolveSettings(v.GetString(flagSettings), home)
	if err != nil {
		return app.InspectOptions{}, err
	}

	format, err := domain.ParseFormat(v.GetString(flagFormat))
	if err != nil {
		return app.InspectOptions{}, err
	}

	return app.InspectOptions{
		Descriptor:      descriptor,
		SettingsFile:    settings,
		LocalRepository: v.GetString(flagLocalRepo),
		Format:          string(format),
		Offline:         v.GetBool(flagOffline),
		NoCache:         v.GetBool(flagNoCache),
		Timings:         v.GetBool(flagTimings),
		LogJSON:         v.GetBool(flagLogJSON),
	}, nil
}

// resolveDescriptor checks that path names an existing .xml or .pom file and
// returns it as an absolute path.
func resolveDescriptor(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", domain.ErrMissingDescriptor
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(domain.ErrDescriptorNotFound, "path", path)
	}
	if !info.Mode().IsRegular() {
		return "", zerr.With(domain.ErrDescriptorNotFile, "path", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".pom":
	default:
		return "", zerr.With(domain.ErrDescriptorExtension, "path", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil //nolint:nilerr // a relative path still works from the current directory
	}
	return abs, nil
}

// resolveMavenHome returns flag when it is a directory, else the M2_HOME directory.
func resolveMavenHome(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(domain.MavenHomeEnv)} {
		if isDir(candidate) {
			return candidate, nil
		}
	}
	return "", domain.ErrMavenHomeUnresolved
}

// resolveSettings returns flag when it is a file, else <home>/conf/settings.xml.
func resolveSettings(flag, home string) (string, error) {
	if isFile(flag) {
		return flag, nil
	}
	fallback := domain.DefaultSettingsPath(home)
	if isFile(fallback) {
		return fallback, nil
	}
	return "", zerr.With(domain.ErrSettingsNotFound, "path", fallback)
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
