package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pantry/internal/config"
	"pantry/internal/database"
	"pantry/internal/importer"
	"pantry/internal/service"

	"github.com/spf13/cobra"
)

// importOptions holds the command line flags.
type importOptions struct {
	File     string
	Bucket   string
	Region   string
	S3Prefix string
}

func main() {
	if err := newImportCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newImportCommand creates the import command.
func newImportCommand() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import --file <products.csv[.gz]>",
		Short: "Bulk-load products into the pantry inventory",
		Long: `Reads rows of prodType,M D YYYY[,note] and adds each one to the inventory.

Files ending in .gz are decompressed. When --s3-bucket is set the file is
read from S3 first (key = --s3-prefix + --file) and from the local file
system if that fails. Malformed rows are logged and skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "product file to import")
	cmd.Flags().StringVar(&opts.Bucket, "s3-bucket", "", "S3 bucket to try before the local file")
	cmd.Flags().StringVar(&opts.Region, "s3-region", "us-east-1", "AWS region of the S3 bucket")
	cmd.Flags().StringVar(&opts.S3Prefix, "s3-prefix", "", "key prefix prepended to --file for S3")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts *importOptions) error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close(context.Background())

	// S3 first when a bucket is given, local file system otherwise
	fileLoader := importer.NewFileLoader(logger)
	var s3Loader importer.Loader
	if opts.Bucket != "" {
		s3Loader, err = importer.NewS3Loader(ctx, opts.Bucket, opts.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		}
	}
	loader := importer.NewFallbackLoader(s3Loader, fileLoader, opts.S3Prefix, logger)

	productService := service.NewProductService(store.Products, logger)

	res, err := importer.Import(ctx, loader, productService, opts.File, logger)
	if err != nil {
		return fmt.Errorf("import failed after %d products: %w", res.Added, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %d products, skipped %d rows\n", res.Added, res.Skipped)
	return nil
}
