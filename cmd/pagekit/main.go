package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/harbormail/pagekit"
	"github.com/harbormail/pagekit/pkg/i18n"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/orchestrator"
)

func main() {
	var (
		commandFlag  = flag.String("command", "", "command to render (prompts when empty)")
		queryFlag    = flag.String("q", "", "search terms")
		localeFlag   = flag.String("locale", "", "locale for translated strings")
		themeFlag    = flag.String("theme", "", "theme name")
		variantFlag  = flag.String("variant", "", "theme variant")
		fragmentFlag = flag.Bool("fragment", false, "emit the content fragment without the document shell")
		outputFlag   = flag.String("output", "", "output file (stdout if empty)")
	)
	flag.Parse()

	command := strings.TrimSpace(*commandFlag)
	if command == "" {
		var err error
		command, err = promptCommand()
		if err != nil {
			log.Fatalf("prompt: %v", err)
		}
	}

	page := model.RenderContext{
		Command:    command,
		HTMLInJSON: *fragmentFlag,
	}
	if q := strings.TrimSpace(*queryFlag); q != "" {
		page.Result.SearchTerms = strings.Fields(q)
	}

	catalog, err := i18n.Default()
	if err != nil {
		log.Fatalf("load translations: %v", err)
	}

	output, err := pagekit.RenderPage(context.Background(), orchestrator.Request{
		Page:         page,
		Locale:       *localeFlag,
		ThemeName:    *themeFlag,
		ThemeVariant: *variantFlag,
	}, orchestrator.WithTranslator(catalog))
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, output, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", *outputFlag)
		return
	}
	fmt.Println(string(output))
}

// promptCommand asks for a command interactively, offering the commands
// the navigation chrome knows about plus free-form entry.
func promptCommand() (string, error) {
	const custom = "other..."

	choice := ""
	err := survey.AskOne(&survey.Select{
		Message: "Command to render:",
		Options: []string{"page", "search", "message/draft", "contact/list", "tag/list", "settings", custom},
		Default: "page",
	}, &choice)
	if err != nil {
		return "", err
	}
	if choice != custom {
		return choice, nil
	}

	command := ""
	err = survey.AskOne(&survey.Input{
		Message: "Custom command:",
	}, &command, survey.WithValidator(survey.Required))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(command), nil
}
