package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repository = "s0up4200/atmo"

var (
	appVersion = "dev"
	buildTime  = "unknown"
)

// SetVersion records the version and build time injected at link time
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
	rootCmd.Version = version
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{skipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "atmo %s (built %s)\n", appVersion, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update atmo to the latest release",
	Annotations: map[string]string{skipConfig: "true"},
	RunE:        runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// parseVersion returns the semantic version of a build, rejecting dev builds
func parseVersion(v string) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}, fmt.Errorf("version %q is not a release version: %w", v, err)
	}
	return parsed, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := parseVersion(appVersion)
	if err != nil {
		return fmt.Errorf("cannot update a development build: %w", err)
	}

	ctx := context.Background()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ atmo %s is up to date\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied replacing %s, try again with elevated privileges: %w", exe, err)
		}
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated to %s\n", latest.Version())
	return nil
}
