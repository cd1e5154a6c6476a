package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sport-reel-generator/application/ports/inbound"
	"sport-reel-generator/infrastructure/gin_interface/dto"
	"strings"

	"github.com/spf13/cobra"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var sport string
	var photoPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the pipeline once for a sport and photo and print the artifact URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(photoPath) == "" {
				return fmt.Errorf("--photo is required")
			}
			photo, err := os.ReadFile(photoPath)
			if err != nil {
				return fmt.Errorf("read photo: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			app, err := newApplication(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			res, err := app.pipeline.Run(cmd.Context(), inbound.RunPipelineParams{
				Sport: sport,
				Photo: photo,
			})
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(dto.GenerateResponse{
				RequestID:    res.RequestID,
				ScriptURL:    res.ScriptURL,
				VoiceoverURL: res.VoiceoverURL,
				VideoURL:     res.VideoURL,
			})
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Sport the reel is about")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to the source photo")
	_ = cmd.MarkFlagRequired("sport")

	return cmd
}
