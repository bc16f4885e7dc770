package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"
)

var openapiFile string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "OpenAPI spec commands",
}

var openapiValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the OpenAPI document",
	Long:  `Load and validate the OpenAPI document served at /openapi.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
		doc, err := loader.LoadFromFile(openapiFile)
		if err != nil {
			log.Fatalf("failed to load OpenAPI document: %v", err)
		}

		if err := doc.Validate(ctx); err != nil {
			log.Fatalf("OpenAPI document is invalid: %v", err)
		}

		fmt.Printf("%s is valid (%d paths)\n", openapiFile, doc.Paths.Len())
	},
}

func init() {
	openapiValidateCmd.Flags().StringVar(&openapiFile, "file", "api/openapi.yml", "OpenAPI document path")

	openapiCmd.AddCommand(openapiValidateCmd)
	rootCmd.AddCommand(openapiCmd)
}
