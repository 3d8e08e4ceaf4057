package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/philipparndt/gomassing/internal/app"
	"github.com/philipparndt/gomassing/internal/measurement"
	"github.com/philipparndt/gomassing/internal/prefs"
	"github.com/philipparndt/gomassing/pkg/viewer"
	"github.com/philipparndt/gomassing/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayOpts struct {
	house     houseFlags
	prefsPath string
	pngPath   string
	asJSON    bool
	resetPose bool
	watch     bool
	settle    time.Duration
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay a gesture script against a fresh house",
	Long: `Replay feeds the pointer events of a JSON script into the editor and prints the
resulting metrics. The camera pose is restored from and saved to the preferences
file, like the desktop editor does between sessions.

Script steps: {"type":"down","x":200,"y":200,"button":"primary"}, {"type":"move",...},
{"type":"up",...}, {"type":"wheel","deltaY":-1}, {"type":"resize","width":800,"height":600}
and {"type":"wait","ms":30}.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	flags := replayCmd.Flags()
	replayOpts.house.register(flags)
	flags.StringVar(&replayOpts.prefsPath, "prefs", prefs.DefaultPath(), "preferences file holding the camera pose")
	flags.StringVar(&replayOpts.pngPath, "png", "", "write the final frame to this PNG file")
	flags.BoolVar(&replayOpts.asJSON, "json", false, "print the result as JSON")
	flags.BoolVar(&replayOpts.resetPose, "reset-pose", false, "forget the saved camera pose and start from the default view")
	flags.BoolVarP(&replayOpts.watch, "watch", "w", false, "replay again whenever the script changes")
	flags.DurationVar(&replayOpts.settle, "settle", 50*time.Millisecond, "time to let pending hover and render work finish")
}

func runReplay(cmd *cobra.Command, args []string) error {
	script := args[0]
	cfg, err := replayOpts.house.config()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := replayOnce(ctx, cfg, script, cmd.OutOrStdout()); err != nil {
		if !replayOpts.watch {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	if !replayOpts.watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(200*time.Millisecond, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	changed := make(chan struct{}, 1)
	if err := fw.Watch([]string{script}, func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	fw.Start()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes, press Ctrl+C to stop\n", script)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			if err := replayOnce(ctx, cfg, script, cmd.OutOrStdout()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
	}
}

// replayResult is the JSON output of a replay
type replayResult struct {
	Session string                `json:"session"`
	Floors  int                   `json:"floors"`
	Metrics measurement.Metrics   `json:"metrics"`
	Labels  measurement.Positions `json:"labels"`
	Frames  uint64                `json:"frames"`
	Pose    viewer.Pose           `json:"pose"`
}

func replayOnce(ctx context.Context, cfg app.Config, script string, out io.Writer) error {
	f, err := os.Open(script)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	steps, err := app.ParseScript(f)
	f.Close()
	if err != nil {
		return err
	}

	store, err := prefs.Load(replayOpts.prefsPath)
	if err != nil {
		return err
	}
	if replayOpts.resetPose {
		store.Remove(viewer.PoseKey)
	}

	editor, err := app.New(cfg, store, nil, nil, logger)
	if err != nil {
		return err
	}
	log := logger.With(zap.String("session", editor.Session()), zap.String("script", script))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- editor.Run(runCtx) }()

	if err := editor.Play(ctx, steps); err != nil {
		editor.Close()
		return fmt.Errorf("replay failed: %w", err)
	}
	time.Sleep(replayOpts.settle)

	status, err := editor.Status(ctx)
	if err != nil {
		editor.Close()
		return err
	}
	frame, err := editor.Snapshot(ctx)
	if err != nil {
		editor.Close()
		return err
	}

	if err := editor.Close(); err != nil {
		log.Warn("failed to close editor", zap.Error(err))
	}
	<-done
	if err := store.Save(); err != nil {
		log.Warn("failed to save preferences", zap.Error(err), zap.String("path", store.Path()))
	}
	log.Info("replay finished", zap.Int("steps", len(steps)), zap.Uint64("frames", status.Frames))

	if replayOpts.pngPath != "" {
		if err := writePNG(replayOpts.pngPath, frame, int(cfg.Width), int(cfg.Height)); err != nil {
			return err
		}
	}

	result := replayResult{
		Session: editor.Session(),
		Floors:  status.Floors,
		Metrics: status.Metrics,
		Labels:  status.Labels,
		Frames:  status.Frames,
		Pose:    status.Pose,
	}
	if replayOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printResult(out, script, result)
	return nil
}

func printResult(out io.Writer, script string, r replayResult) {
	fmt.Fprintln(out, "Replay Result")
	fmt.Fprintln(out, "=============")
	fmt.Fprintf(out, "Script: %s\n", script)
	fmt.Fprintf(out, "Frames: %d\n\n", r.Frames)

	fmt.Fprintln(out, "Metrics:")
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", name, r.Metrics[name])
	}

	fmt.Fprintln(out, "\nLabels:")
	for _, name := range []string{measurement.Width, measurement.Length} {
		if p, ok := r.Labels[name]; ok {
			fmt.Fprintf(out, "  %s: (%.1f, %.1f)\n", name, p.X, p.Y)
		}
	}
}

func writePNG(path string, frame viewer.Frame, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, viewer.Rasterize(frame, width, height)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
