package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/db"
	dbMemory "github.com/kailas-cloud/fedsearch/internal/db/memory"
	dbSQLite "github.com/kailas-cloud/fedsearch/internal/db/sqlite"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/fedsearch/internal/logger"
	recentrepo "github.com/kailas-cloud/fedsearch/internal/repository/recent"
	"github.com/kailas-cloud/fedsearch/internal/repository/records"
	recentuc "github.com/kailas-cloud/fedsearch/internal/usecase/recent"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
)

func openStore(c *cli.Context) (*dbSQLite.Store, error) {
	s, err := dbSQLite.NewStore(c.Context, dbSQLite.Config{Path: c.String("db")})
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return s, nil
}

func cliLogger(c *cli.Context) (*zap.Logger, error) {
	return logpkg.New("local", c.String("log-level"))
}

func migrateCommand(c *cli.Context) error {
	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	_, _ = fmt.Fprintf(c.App.Writer, "schema ready: %s\n", c.String("db"))
	return nil
}

func seedCommand(c *cli.Context) error {
	f, err := loadFixtures(c.String("file"))
	if err != nil {
		return err
	}

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	counts, err := seed(c.Context, s, f)
	if err != nil {
		return err
	}

	for _, t := range []db.Table{db.TableReports, db.TableDataEntries, db.TableDocuments, db.TableComments} {
		_, _ = fmt.Fprintf(c.App.Writer, "%s: %d\n", t, counts[t])
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(term) == "" {
		return errors.New("query: TERM is required")
	}

	log, err := cliLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	svc := searchuc.New(
		[]searchuc.Adapter{
			records.NewReports(s),
			records.NewDataEntries(s),
			records.NewDocuments(s),
			records.NewComments(s),
		},
		recentuc.New(recentrepo.New(dbMemory.NewStore(), "fedseed:"), 0),
		searchuc.WithLogger(log),
		searchuc.WithCandidateLimit(c.Int("limit")),
		searchuc.WithAdapterTimeout(c.Duration("timeout")),
	)

	results, err := svc.SearchTerm(c.Context, term, c.String("type"), c.String("org"))
	if err != nil {
		return err
	}
	return printResults(c.App.Writer, results)
}

func printResults(w io.Writer, results []result.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RELEVANCE\tKIND\tID\tTITLE\tCREATED")
	for i := range results {
		r := &results[i]
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.Relevance(), r.Kind(), r.ID(), r.Title(), r.CreatedAt().UTC().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d result(s)\n", len(results))
	return err
}
