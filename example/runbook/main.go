// Command runbook is a small task-runner front end demonstrating the
// argparse module: sub-commands, flag bundles, choices, @file expansion and
// YAML profile defaults.
package main

import (
	"os"

	"github.com/argset/argparse"
	"github.com/argset/argparse/logger"
	"gopkg.in/yaml.v3"
)

// profile carries default option values loaded from runbook.yaml.
type profile struct {
	Jobs   string `yaml:"jobs"`
	Format string `yaml:"format"`
}

func loadProfile(path string) profile {
	p := profile{Jobs: "1", Format: "text"}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		logger.Warnf("ignoring malformed profile %s: %v", path, err)
	}
	return p
}

func main() {
	prof := loadProfile("runbook.yaml")

	parser := argparse.NewParser("runbook").
		Description("run small task lists from the command line").
		Epilog("tokens may be read from a file with @FILE").
		FromfilePrefixChars("@")

	parser.AddArgument("-v", "--verbose").
		Action(argparse.StoreTrue).
		Help("enable debug logging").
		Callback(func() { logger.Setup(true) })
	parser.AddArgument("--version").
		Action(argparse.Version).
		Version("runbook 1.0.0")

	commands := parser.AddSubparsers().
		Dest("command").
		Required(true).
		Help("available commands")

	run := commands.AddParser("run")
	run.AddArgument("-j", "--jobs").
		DefaultValue(prof.Jobs).
		Help("parallel job count")
	run.AddArgument("--format").
		Choices([]string{"text", "json", "yaml"}).
		DefaultValue(prof.Format).
		Help("progress output format")
	run.AddArgument("-t", "--tag").
		ActionNamed("append").
		Help("run only tasks carrying the tag; repeatable")
	run.AddArgument("targets").
		Nargs("+").
		Help("task names to run")

	list := commands.AddParser("list")
	list.AddArgument("--format").
		Choices([]string{"text", "json"}).
		DefaultValue("text").
		Help("listing format")
	list.AddArgument("pattern").
		Nargs("?").
		DefaultValue("*").
		Help("glob filtering the listed tasks")

	ns, err := parser.ParseArgsFrom(nil)
	if err != nil {
		logger.Fatalf("parse: %v", err)
	}
	if ns == nil {
		return
	}

	command, err := argparse.Get[string](ns, "command")
	if err != nil {
		logger.Fatalf("no command selected: %v", err)
	}

	switch command {
	case "run":
		jobs, _ := argparse.Get[int](ns, "jobs")
		format, _ := argparse.Get[string](ns, "format")
		targets, _ := argparse.GetSlice[string](ns, "targets")
		tags, _ := argparse.GetSlice[string](ns, "tag")
		logger.Infof("running %d target(s) with %d job(s), format %s", len(targets), jobs, format)
		progress := logger.NewProgress()
		for i, target := range targets {
			progress.Update("running %s (%d/%d)", target, i+1, len(targets))
			task := logger.Task(target)
			if len(tags) > 0 {
				task.Debugf("matched tags %v", tags)
			}
			task.Infof("done")
		}
		progress.Done("ran %d target(s)", len(targets))
	case "list":
		pattern, _ := argparse.Get[string](ns, "pattern")
		format, _ := argparse.Get[string](ns, "format")
		logger.Infof("listing tasks matching %s as %s", pattern, format)
	}
}
