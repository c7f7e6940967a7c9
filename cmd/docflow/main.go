package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"docflow/internal"
	"docflow/internal/config"
	"docflow/internal/export"
	"docflow/internal/history"
	"docflow/internal/inspect"
	"docflow/internal/remote"
	"docflow/internal/schema"
	"docflow/internal/session"
	"docflow/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	client := remote.NewClient(cfg)
	ctx := context.Background()

	cmd := os.Args[1]
	switch cmd {
	case "check":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "document path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		must(inspect.CheckFile(*file))
		fmt.Printf("ok: %s is ready to upload\n", filepath.Base(*file))
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "document path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		must(inspect.CheckFile(*file))

		controller := session.NewUploadController(client)
		fmt.Printf("uploading %s...\n", filepath.Base(*file))
		result, err := controller.Submit(ctx, *file)
		must(err)
		printResult(result)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "document path")
		edit := fs.Bool("edit", false, "review the records in $EDITOR before continuing")
		save := fs.Bool("save", false, "persist the records")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		must(inspect.CheckFile(*file))

		controller := session.NewUploadController(client)
		fmt.Printf("uploading %s...\n", filepath.Base(*file))
		result, err := controller.Submit(ctx, *file)
		must(err)
		printResult(result)

		editor := session.NewRecordEditor(func(records internal.RecordList) {
			fmt.Printf("applied %d record(s)\n", len(records))
		})
		editor.Seed(result.Records)

		if *edit {
			must(editInteractive(cfg, editor))
			printRecords(editor.Current())
		}

		issues, err := schema.ValidateRecords(editor.Current())
		must(err)
		for _, issue := range issues {
			fmt.Printf("warning: %s\n", issue)
		}

		if *save {
			cleared := make(chan struct{})
			guard := session.NewSaveGuard(client, time.Duration(cfg.SaveClearDelayMs)*time.Millisecond, func() {
				controller.Clear()
				close(cleared)
			})
			defer guard.Teardown()

			message, err := guard.Save(ctx, editor)
			must(err)
			if message == "" {
				message = "saved"
			}
			fmt.Printf("saved: %s\n", message)

			select {
			case <-cleared:
				fmt.Println("view cleared")
			case <-time.After(time.Duration(cfg.SaveClearDelayMs)*time.Millisecond + time.Second):
			}
		}
	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		search := fs.String("search", "", "substring match on cliente")
		tipo := fs.String("type", history.TypeAll, "exact tipo_solicitud, or all")
		_ = fs.Parse(os.Args[2:])

		svc := history.NewService(client)
		records := svc.FetchAll(ctx)
		filtered := history.Filter(records, *search, *tipo)
		printHistory(filtered)

		stats := history.Aggregate(records, filtered)
		fmt.Printf("total=%d filtered=%d monto_total=%s\n", stats.Total, stats.Filtered, util.FormatMonto(&stats.MontoTotal))
	case "history:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		output := strings.TrimSpace(*out)
		if output == "" {
			output = filepath.Join(cfg.OutputDir, "historial.xlsx")
		}

		svc := history.NewService(client)
		records := svc.FetchAll(ctx)
		if len(records) == 0 {
			must(fmt.Errorf("no records to export"))
		}
		must(export.HistoryToXLSX(records, output))
		fmt.Printf("exported %d record(s) to %s\n", len(records), output)
	default:
		usage()
		os.Exit(1)
	}
}

// editInteractive drives the edit session through $EDITOR: the draft goes
// to a temp file, the user edits it, and the result is fed back through the
// editor's parse gate. Broken JSON offers a re-edit; declining cancels the
// edit and keeps the extracted records.
func editInteractive(cfg config.Config, editor *session.RecordEditor) error {
	editor.EnterEdit()

	tmp, err := os.CreateTemp("", "docflow-draft-*.json")
	if err != nil {
		return err
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)

	stdin := bufio.NewReader(os.Stdin)
	for {
		if err := os.WriteFile(path, []byte(editor.Snapshot().Draft), 0o600); err != nil {
			editor.Cancel()
			return err
		}

		run := exec.Command(cfg.EditorCmd, path)
		run.Stdin = os.Stdin
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		if err := run.Run(); err != nil {
			editor.Cancel()
			return fmt.Errorf("editor failed: %w", err)
		}

		blob, err := os.ReadFile(path)
		if err != nil {
			editor.Cancel()
			return err
		}
		editor.SetDraft(string(blob))

		state := editor.Snapshot()
		if state.Valid {
			return editor.Apply()
		}

		fmt.Printf("error: %s\n", state.Err)
		fmt.Print("re-edit the draft? [y/N] ")
		answer, _ := stdin.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			editor.Cancel()
			fmt.Println("edit cancelled, keeping the extracted records")
			return nil
		}
	}
}

func printResult(result internal.UploadResult) {
	if result.RawText != "" {
		fmt.Println("--- extracted text ---")
		fmt.Println(util.Preview(result.RawText, 2000))
	}
	printRecords(result.Records)
}

func printRecords(records internal.RecordList) {
	if records == nil {
		fmt.Println("no structured data")
		return
	}
	blob, err := json.MarshalIndent(records, "", "  ")
	if err == nil {
		fmt.Println("--- structured records ---")
		fmt.Println(string(blob))
	}
	if s := internal.Summarize(records); s != nil {
		line := fmt.Sprintf("cliente=%s tipo=%s fecha=%s monto=%s",
			orNA(s.Cliente), orNA(s.TipoSolicitud), orNA(s.Fecha), util.FormatMonto(s.Monto))
		if s.Count > 1 {
			line += fmt.Sprintf(" (+%d more)", s.Count-1)
		}
		fmt.Println(line)
	}
}

func printHistory(records []internal.HistoryRecord) {
	if len(records) == 0 {
		fmt.Println("no records")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENTE\tTIPO\tFECHA\tMONTO\tREGISTRADO")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Cliente, r.TipoSolicitud, r.Fecha, util.FormatMonto(r.Monto), r.CreatedAt)
	}
	_ = w.Flush()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func usage() {
	fmt.Println("usage: docflow <command>")
	fmt.Println("commands:")
	fmt.Println("  check --file=doc.pdf")
	fmt.Println("  process --file=doc.pdf")
	fmt.Println("  run --file=doc.pdf [--edit] [--save]")
	fmt.Println("  history [--search=cliente] [--type=Factura|Cotización|Queja|Venta|all]")
	fmt.Println("  history:export [--out=./out/historial.xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
