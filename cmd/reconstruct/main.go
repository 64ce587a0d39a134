// Command reconstruct recovers Shamir secrets from share documents.
//
// Each argument names one share document (a local JSON or YAML file, or an
// s3://bucket/key object) and is processed as an independent task:
//
//	reconstruct testcase1.json testcase2.json
//
// The first failing task halts the run and the command exits with status 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/cloudflare/cfssl/log"
	"github.com/spf13/cobra"

	"github.com/Pro7ech/sss/lagrange"
	"github.com/Pro7ech/sss/recovery"
	"github.com/Pro7ech/sss/storage"
)

// taskError is an error raised while processing a document,
// as opposed to a command line error.
type taskError struct {
	err error
}

func (e taskError) Error() string {
	return e.err.Error()
}

func (e taskError) Unwrap() error {
	return e.err
}

type options struct {
	mode     string
	verify   bool
	workers  int
	output   string
	s3Region string
	verbose  bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {

	var opts options

	cmd := &cobra.Command{
		Use:   "reconstruct FILE FILE [FILE...]",
		Short: "Recover Shamir secrets from share documents",
		Long: `Recover the secret of each share document by Lagrange interpolation at x = 0.

A share document holds the threshold parameters under "keys" and one entry
per share, keyed by the share identifier:

    {"keys": {"n": 4, "k": 3}, "1": {"base": "10", "value": "4"}, ...}

The first k shares, in document order, are used.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return fmt.Errorf("%w\nPlease provide at least two JSON files containing the secret shares", err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {

			mode, err := lagrange.ParseMode(opts.mode)
			if err != nil {
				return err
			}

			out, err := newPrinter(opts.output, stdout)
			if err != nil {
				return err
			}

			if opts.verbose {
				log.Level = log.LevelDebug
			}

			cfg := recovery.Config{
				Mode:    mode,
				Verify:  opts.verify,
				Workers: opts.workers,
			}

			if err = run(cmd.Context(), out, args, cfg, opts.s3Region); err != nil {
				return taskError{err}
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.mode, "mode", lagrange.Truncated.String(), `division of the Lagrange terms: "truncated" divides each term with truncation, "exact" sums the terms as rationals`)
	flags.BoolVar(&opts.verify, "verify", false, "check that the shares beyond the threshold lie on the interpolated polynomial")
	flags.IntVar(&opts.workers, "workers", 1, "number of documents processed concurrently")
	flags.StringVarP(&opts.output, "output", "o", "text", `output format: "text" or "json"`)
	flags.StringVar(&opts.s3Region, "s3-region", "", "AWS region of the s3:// documents (defaults to the AWS environment)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, out printer, sources []string, cfg recovery.Config, s3Region string) (err error) {

	backend := storage.Router{File: storage.File{}}

	if storage.NeedsS3(sources) {

		awsCfg := aws.NewConfig()
		if s3Region != "" {
			awsCfg = awsCfg.WithRegion(s3Region)
		}

		var sess *session.Session
		if sess, err = session.NewSession(awsCfg); err != nil {
			return fmt.Errorf("cannot create AWS session: %w", err)
		}

		backend.S3 = storage.NewS3(s3.New(sess))
	}

	rec := recovery.New(cfg, backend)

	var printErr error
	i := 0

	if err = rec.RecoverAll(ctx, sources, func(res *recovery.Result) {
		if printErr == nil {
			printErr = out.Print(i, res)
		}
		i++
	}); err != nil {
		return
	}

	return printErr
}

// execute runs the command with the given arguments and returns its exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {

	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var tErr taskError
		if errors.As(err, &tErr) {
			fmt.Fprintf(stderr, "Error during secret reconstruction: %s\n", err)
			fmt.Fprintln(stderr, "Please check your input files and try again.")
		} else {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}

	return 0
}

func main() {
	log.Level = log.LevelWarning
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
