// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aibor/vpack/internal/copier"
	"github.com/aibor/vpack/internal/cpio"
	"github.com/aibor/vpack/internal/manifest"
	"github.com/aibor/vpack/internal/packer"
	"github.com/aibor/vpack/internal/registry"
	"github.com/aibor/vpack/internal/virtfs"
)

// Set on build.
var version = "dev"

// IO provides input and output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

type flags struct {
	manifestPath string
	debug        bool
	noSkip       bool
}

func (f *flags) loadManifest() (*manifest.Manifest, error) {
	m, err := manifest.Load(f.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	return m, nil
}

func newRootCommand(cfg IO) *cobra.Command {
	flags := &flags{}

	rootCmd := &cobra.Command{
		Use:           "vpack",
		Short:         "Materialize a virtual file tree into a directory or archive",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(cfg.Stderr, flags.debug)
		},
	}

	rootCmd.SetOut(cfg.Stdout)
	rootCmd.SetErr(cfg.Stderr)

	rootCmd.PersistentFlags().StringVarP(
		&flags.manifestPath,
		"manifest",
		"m",
		manifest.DefaultFilename,
		"path to the manifest file",
	)
	rootCmd.PersistentFlags().BoolVar(
		&flags.debug,
		"debug",
		false,
		"enable debug output",
	)
	rootCmd.PersistentFlags().BoolVar(
		&flags.noSkip,
		"no-skip",
		false,
		"compare content even if the destination is newer than the source",
	)

	rootCmd.AddCommand(
		newCopyCommand(flags),
		newPackCommand(flags),
		newCPIOCommand(flags),
		newListCommand(flags),
	)

	return rootCmd
}

func newCopyCommand(flags *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "copy DIRECTORY",
		Short: "Synchronize the files into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.loadManifest()
			if err != nil {
				return err
			}

			fileCopier := copier.New()
			if err := m.Apply(fileCopier); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}

			result, err := fileCopier.Copy(args[0], !flags.noSkip)
			if err != nil {
				return fmt.Errorf("copy: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"%d written, %d unchanged, %d files and %d directories removed\n",
				len(result.Written),
				len(result.Unchanged),
				len(result.RemovedFiles),
				len(result.RemovedDirs),
			)

			return nil
		},
	}
}

func newPackCommand(flags *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "pack ARCHIVE",
		Short: "Synchronize the files into a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.loadManifest()
			if err != nil {
				return err
			}

			archivePacker := packer.New(m.Options())
			if err := m.Apply(archivePacker); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}

			archivePacker.Preload(m.Preload...)

			result, err := archivePacker.Copy(args[0], !flags.noSkip)
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"%d written, %d reused\n",
				len(result.Written),
				len(result.Reused),
			)

			return nil
		},
	}
}

func newCPIOCommand(flags *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cpio ARCHIVE",
		Short: "Write the files as CPIO archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := flags.loadManifest()
			if err != nil {
				return err
			}

			reg := registry.New()
			if err := m.Apply(reg); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}

			return writeCPIO(args[0], reg)
		},
	}
}

func newListCommand(flags *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the virtual file tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := flags.loadManifest()
			if err != nil {
				return err
			}

			reg := registry.New()
			if err := m.Apply(reg); err != nil {
				return fmt.Errorf("manifest: %w", err)
			}

			fsys, err := virtfs.New(reg.All())
			if err != nil {
				return fmt.Errorf("build tree: %w", err)
			}

			return printTree(cmd.OutOrStdout(), fsys)
		},
	}
}

func printTree(out io.Writer, fsys fs.FS) error {
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		if entry.IsDir() {
			fmt.Fprintln(out, path+"/")
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err //nolint:wrapcheck
		}

		fmt.Fprintf(out, "%s\t%d\n", path, info.Size())

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk tree: %w", err)
	}

	return nil
}

func writeCPIO(path string, reg *registry.Registry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	err = cpio.WriteRegistry(file, reg.All())

	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("close archive: %w", closeErr)
	}

	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("cpio: %w", err)
	}

	slog.Debug("Wrote CPIO archive",
		slog.String("path", path),
		slog.Int("files", reg.Len()))

	return nil
}

// Run is the main entry point for the CLI command. It returns the exit code.
func Run(args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	rootCmd := newRootCommand(cfg)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return 1
	}

	return 0
}
