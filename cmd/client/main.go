package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/adrianliechti/waves-mcp/pkg/client"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8000/mcp", "server url")
	tokenFlag := flag.String("token", "", "server token")
	toolFlag := flag.String("tool", "", "tool name")
	argsFlag := flag.String("args", "", "tool arguments (json)")
	sseFlag := flag.Bool("sse", false, "use the sse transport")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	if *sseFlag {
		options = append(options, client.WithSSE())
	}

	client := client.New(*urlFlag, options...)

	reader := bufio.NewReader(os.Stdin)

	tool := *toolFlag

	if tool == "" {
		val, err := selectTool(ctx, client, reader, os.Stdout)

		if err != nil {
			panic(err)
		}

		tool = val
	}

	input := *argsFlag

	if input == "" {
		val, err := readArguments(reader, os.Stdout)

		if err != nil {
			panic(err)
		}

		input = val
	}

	call(ctx, client, tool, input)
}

func selectTool(ctx context.Context, client *client.Client, reader *bufio.Reader, output io.Writer) (string, error) {
	tools, err := client.Tools.List(ctx)

	if err != nil {
		return "", err
	}

	var names []string

	for _, t := range tools {
		names = append(names, t.Name)
	}

	return chooseTool(reader, output, names)
}

func chooseTool(reader *bufio.Reader, output io.Writer, names []string) (string, error) {
	sort.Strings(names)

	for i, name := range names {
		fmt.Fprintf(output, "%2d) %s\n", i+1, name)
	}

	io.WriteString(output, " >  ")
	sel, err := readLine(reader)

	if err != nil {
		return "", err
	}

	idx, err := strconv.Atoi(sel)

	if err != nil {
		return "", err
	}

	if idx < 1 || idx > len(names) {
		return "", fmt.Errorf("invalid selection: %d", idx)
	}

	io.WriteString(output, "\n")

	return names[idx-1], nil
}

func readArguments(reader *bufio.Reader, output io.Writer) (string, error) {
	io.WriteString(output, "args (json) >>> ")

	line, err := readLine(reader)

	if errors.Is(err, io.EOF) {
		return "", nil
	}

	return line, err
}

// readLine also accepts a last line without a trailing newline.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')

	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func call(ctx context.Context, c *client.Client, tool, input string) {
	output := os.Stdout

	args := map[string]any{}

	if input != "" {
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			output.WriteString("invalid arguments: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	result, err := c.Tools.Call(ctx, tool, args)

	if err != nil {
		output.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if result.Text != "" {
		output.WriteString(result.Text + "\n")
	}

	for _, l := range result.Links {
		output.WriteString(l.URI)

		if l.Size != nil {
			output.WriteString(fmt.Sprintf(" (%d bytes)", *l.Size))
		}

		output.WriteString("\n")
	}

	if result.IsError {
		os.Exit(1)
	}
}
