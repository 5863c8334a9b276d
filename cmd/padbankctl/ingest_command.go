// ABOUTME: Ingest subcommand for padbankctl
// ABOUTME: Converts WAV, MP3, or FLAC sources into canonical library assets
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/padbank/padbank-go/internal/config"
	"github.com/padbank/padbank-go/pkg/audio/convert"
	"github.com/padbank/padbank-go/pkg/store"
	"github.com/spf13/cobra"
)

func newIngestCommand() *cobra.Command {
	var configPath string
	var libraryDir string
	var name string
	var maxBytes uint32

	cmd := &cobra.Command{
		Use:   "ingest <folder> <file>",
		Short: "Convert a sample into the library",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, source := args[0], args[1]

			dir := libraryDir
			if dir == "" {
				path := configPath
				if path == "" {
					path = config.DefaultPath()
				}
				cfg, err := config.Load(path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				dir = cfg.Library.Dir
			}

			assetName := name
			if assetName == "" {
				base := filepath.Base(source)
				assetName = strings.TrimSuffix(base, filepath.Ext(base)) + ".wav"
			}
			ref := folder + "/" + assetName

			info, err := ingest(dir, ref, source, convert.Options{MaxDataBytes: maxBytes})
			if err != nil {
				return err
			}

			fmt.Printf("Ingested %s -> %s (%d samples at %dHz)\n",
				source, ref, info.TotalSamples, info.SampleRate)
			if info.Truncated {
				fmt.Println("Warning: source exceeded the asset size cap and was truncated")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path")
	cmd.Flags().StringVar(&libraryDir, "library", "", "Library directory (overrides config)")
	cmd.Flags().StringVar(&name, "name", "", "Asset name (default: source name with .wav)")
	cmd.Flags().Uint32Var(&maxBytes, "max-bytes", convert.DefaultMaxDataBytes, "Asset data size cap in bytes")

	return cmd
}

// ingest converts source into a staged library asset, committing only
// on success so a failed conversion never clobbers an existing asset.
func ingest(dir, ref, source string, opts convert.Options) (convert.AssetInfo, error) {
	src, err := os.Open(source)
	if err != nil {
		return convert.AssetInfo{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	st, err := store.NewDirStore(dir)
	if err != nil {
		return convert.AssetInfo{}, fmt.Errorf("failed to open library: %w", err)
	}

	staged, err := st.Create(ref)
	if err != nil {
		return convert.AssetInfo{}, fmt.Errorf("failed to stage asset: %w", err)
	}

	var info convert.AssetInfo
	switch strings.ToLower(filepath.Ext(source)) {
	case ".wav":
		info, err = convert.Convert(src, staged, opts)
	case ".mp3":
		info, err = convert.FromMP3(src, staged, opts)
	case ".flac":
		info, err = convert.FromFLAC(src, staged, opts)
	default:
		err = fmt.Errorf("unsupported source format %q", filepath.Ext(source))
	}
	if err != nil {
		staged.Abort()
		return convert.AssetInfo{}, fmt.Errorf("conversion failed: %w", err)
	}

	if err := staged.Commit(); err != nil {
		return convert.AssetInfo{}, fmt.Errorf("failed to commit asset: %w", err)
	}
	return info, nil
}
