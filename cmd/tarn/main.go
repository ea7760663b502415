package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/tarn-lang/tarn/pkg/interpreter"
	"github.com/tarn-lang/tarn/pkg/parser"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:  "tarn",
		Usage: "The tarn interpreter",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a tarn source file",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("must provide exactly one tarn file as argument")
					}

					path := c.Args().First()
					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open file: %w", err)
					}
					defer f.Close()

					prog, err := parser.ParseReader(path, f)
					if err != nil {
						return err
					}

					logger := slog.Default()

					interp, err := interpreter.New(logger, interpreter.Config{})
					if err != nil {
						return fmt.Errorf("failed to initialize interpreter: %w", err)
					}

					return interp.Execute(prog)
				},
			},
			{
				Name:  "repl",
				Usage: "Run an interactive session",
				Action: func(ctx context.Context, c *cli.Command) error {
					logger := slog.Default()

					interp, err := interpreter.New(logger, interpreter.Config{})
					if err != nil {
						return fmt.Errorf("failed to initialize interpreter: %w", err)
					}

					if isatty.IsTerminal(os.Stdin.Fd()) {
						return runInteractive(interp)
					}

					return runPiped(interp)
				},
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}

func runInteractive(interp *interpreter.Interpreter) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	var pending string
	for n := 0; ; {
		prompt := ">> "
		if pending != "" {
			prompt = ".. "
		}

		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}

			return err
		}

		if pending == "" && strings.TrimSpace(input) == "" {
			continue
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		pending += input + "\n"
		if needsMore(pending) {
			continue
		}

		evalLine(interp, fmt.Sprintf("repl:%d", n), pending)
		pending = ""
		n++
	}
}

func runPiped(interp *interpreter.Interpreter) error {
	scanner := bufio.NewScanner(os.Stdin)

	var pending string
	n := 0
	for scanner.Scan() {
		input := scanner.Text()
		if pending == "" && strings.TrimSpace(input) == "" {
			continue
		}

		pending += input + "\n"
		if needsMore(pending) {
			continue
		}

		evalLine(interp, fmt.Sprintf("repl:%d", n), pending)
		pending = ""
		n++
	}

	if pending != "" {
		evalLine(interp, fmt.Sprintf("repl:%d", n), pending)
	}

	return scanner.Err()
}

// needsMore reports whether source ends inside an unclosed block, so the
// session should keep reading lines before parsing.
func needsMore(source string) bool {
	tokens, err := parser.Lex("repl", source)
	if err != nil {
		// Let the parse report the problem.
		return false
	}

	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case parser.TokenLeftBrace:
			depth++
		case parser.TokenRightBrace:
			depth--
		}
	}

	return depth > 0
}

// evalLine parses and runs one line, reporting errors without ending the
// session. Global state persists across lines because the interpreter keeps
// one global scope.
func evalLine(interp *interpreter.Interpreter, name, input string) {
	prog, err := parser.Parse(name, input)
	if err != nil {
		var errs *parser.ErrorSet
		if errors.As(err, &errs) {
			for _, err := range errs.Unwrap() {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}

		return
	}

	err = interp.Execute(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
