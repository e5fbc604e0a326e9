package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"wse/common"
	"wse/config"
	"wse/fetch"
	"wse/project"
	"wse/render"
	"wse/state"
)

// Run is the action of extract command.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	target := cmd.Args().Get(0)
	if len(target) == 0 {
		return errors.New("no target URL has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many targets", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	if err := checkTarget(target); err != nil {
		return err
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("unable to use requested output format: %w", err)
	}
	env.Format = format
	env.OutputFile = cmd.String("output-file")
	env.ProjectName = cmd.String("project-name")
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Extraction starting", zap.String("url", target), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	ex := New(
		fetch.NewClient(&env.Cfg.Fetch, nil, env.Log),
		fetch.NewBrowser(&env.Cfg.Browser, env.Log),
		env.Rpt, env.Log)

	return process(ctx, env, ex, target, os.Stdout, config.EnableColorOutput(os.Stdout))
}

func checkTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("bad target URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("bad target URL %q: absolute http(s) URL expected", target)
	}
	return nil
}

// process handles single extraction independently of CLI framework.
func process(ctx context.Context, env *state.LocalEnv, ex *Extractor, target string, out io.Writer, swatches bool) error {
	log := env.Log.Named("extract")

	layout, err := project.Resolve(&env.Cfg.Output, project.Request{
		URL:         target,
		Format:      env.Format,
		OutputFile:  env.OutputFile,
		ProjectName: env.ProjectName,
	}, log)
	if err != nil {
		return err
	}
	// refuse early, before any network activity
	if err := layout.Check(env.Overwrite); err != nil {
		return err
	}

	templates := render.DefaultTemplates()
	if len(env.Cfg.Templates.Directory) > 0 {
		templates = render.DirTemplates(env.Cfg.Templates.Directory)
	}
	generated := time.Now()
	registry := render.NewRegistry(render.Options{
		Now:       func() time.Time { return generated },
		Templates: templates,
		Log:       env.Log,
	})

	res, err := ex.Extract(ctx, target)
	if err != nil {
		return fmt.Errorf("unable to extract styles: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	document, err := registry.Render(env.Format, res.Profile)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("output/"+filepath.Base(layout.Output), []byte(document))

	info := &project.Info{
		Profile:   res.Profile,
		Format:    env.Format,
		Generated: generated,
		RunID:     env.RunID,
		Sheets:    res.Page.Sheets,
	}
	if err := project.Save(layout, document, info, env.Log); err != nil {
		return err
	}
	for _, name := range layout.Files()[1:] {
		env.Rpt.Store("output/"+filepath.Base(name), name)
	}
	log.Debug("Output written", zap.Strings("files", layout.Files()))

	return project.Summary(out, res.Profile, env.Format, layout, swatches)
}
