/*
 * ASAP - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/asap/asaperr"
	"github.com/rcornwell/asap/catalogue"
	"github.com/rcornwell/asap/console"
	"github.com/rcornwell/asap/hierarchy"
	"github.com/rcornwell/asap/logger"
	"github.com/rcornwell/asap/pragma"
	"github.com/rcornwell/asap/rtlast"
	"github.com/rcornwell/asap/smu"
	"github.com/rcornwell/asap/smulang"
	"github.com/rcornwell/asap/specfile"
	"github.com/rcornwell/asap/sru"
	"github.com/rcornwell/asap/srulang"
	"github.com/rcornwell/asap/stagelog"
	"github.com/rcornwell/asap/transform"
	"github.com/rcornwell/asap/transform/toppatch"
)

var Logger *slog.Logger

func main() {
	optSpec := getopt.StringLong("spec", 's', "", "ASAP_SPEC file")
	optOut := getopt.StringLong("out", 'o', "", "Output directory")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the interactive console after the batch run")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.StringLong("debug", 'd', "", "Comma-separated stage trace list: pragma,hierarchy,transform,smu,sru,all")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	debugStderr := *optDebug != ""
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	if debugStderr {
		programLevel.Set(slog.LevelDebug) // stagelog traces are Debug records
	}
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debugStderr))
	slog.SetDefault(Logger)

	if debugStderr {
		stagelog.Enable(stagelog.Parse(strings.Split(*optDebug, ",")))
	}

	if *optSpec == "" || *optOut == "" {
		Logger.Error("both -spec and -out are required")
		getopt.Usage()
		os.Exit(1)
	}

	if err := run(context.Background(), *optSpec, *optOut, *optInteractive); err != nil {
		Logger.Error(err.Error())
		os.Exit(exitCode(err))
	}
}

// exitCode maps a typed asaperr.Error to its Kind value, so distinct
// failure classes are distinguishable from a shell script without
// parsing the log.
func exitCode(err error) int {
	var ae *asaperr.Error
	if errors.As(err, &ae) {
		return int(ae.Kind)
	}
	return 1
}

// readSource reads path, returning ctx's error without touching the
// filesystem if ctx is already cancelled.
func readSource(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	return string(data), nil
}

// bridgeModule converts one parsed RTL module and its scanned pragma
// directives into the declaration-level hierarchy.Module the
// catalogue builder expects, matching each directive to the
// declaration on the same source line.
func bridgeModule(m *rtlast.Module, directives []pragma.Directive) *hierarchy.Module {
	byLine := make(map[int]pragma.Directive, len(directives))
	for _, d := range directives {
		byLine[d.Line] = d
	}

	hmod := &hierarchy.Module{Name: m.Name}
	for _, decl := range m.Decls {
		directive, ok := byLine[decl.Line]
		if !ok {
			continue
		}
		sig := hierarchy.SignalDecl{Name: decl.Name}
		if directive.Observe != nil {
			sig.Observe = &hierarchy.Range{MSB: directive.Observe.MSB, LSB: directive.Observe.LSB}
		}
		if directive.Control != nil {
			sig.Control = &hierarchy.Range{MSB: directive.Control.Range.MSB, LSB: directive.Control.Range.LSB}
			if directive.Control.Kind == catalogue.KindClock {
				sig.ControlKind = hierarchy.ControlClock
			} else {
				sig.ControlKind = hierarchy.ControlSignal
			}
		}
		hmod.Signals = append(hmod.Signals, sig)
	}
	for _, inst := range m.Instances {
		hmod.Instances = append(hmod.Instances, hierarchy.InstanceDecl{Name: inst.InstanceName, ModuleName: inst.ModuleName})
	}
	return hmod
}

// reorderEntries walks control's pre-reorder leaves and looks up each
// one's post-reorder bit range in reordered, splitting the results
// into clock and signal groups for the patch-block emitter.
func reorderEntries(control *catalogue.Tree, controlType *catalogue.TypeTree, reordered *catalogue.Tree) (clockEntries, signalEntries []toppatch.ReorderEntry) {
	for _, leaf := range control.Leaves() {
		newRange, ok := reordered.LookupDotted(leaf.Name)
		if !ok {
			continue
		}
		entry := toppatch.ReorderEntry{
			OriginalMSB:   leaf.Range.MSB,
			OriginalLSB:   leaf.Range.LSB,
			RearrangedMSB: newRange.MSB,
			RearrangedLSB: newRange.LSB,
		}
		kind, _ := controlType.Lookup(strings.Split(leaf.Name, "."))
		if kind == catalogue.KindClock {
			clockEntries = append(clockEntries, entry)
		} else {
			signalEntries = append(signalEntries, entry)
		}
	}
	return clockEntries, signalEntries
}

// triggerNames inverts the trigger-index map C4 returns into a
// slot-ordered slice of sequence names for the console to display.
func triggerNames(idx map[string]int) []string {
	if idx == nil {
		return nil
	}
	names := make([]string, len(idx))
	for name, i := range idx {
		names[i] = name
	}
	return names
}

// run drives C1 through C5 in order: parse every RTL file, build the
// hierarchy and its catalogues, rewrite the RTL, then optionally
// compile the SMU and SRU bitstreams and the top patch block, each
// result written under outDir.
func run(ctx context.Context, specPath, outDir string, interactive bool) error {
	spec, err := specfile.Load(specPath)
	if err != nil {
		return err
	}

	fileList, err := specfile.LoadFileList(spec.FileList)
	if err != nil {
		return err
	}

	registry := hierarchy.Registry{}
	rtlModules := make([]*rtlast.Module, 0, len(fileList))
	moduleDirectives := map[string][]pragma.Directive{}

	for _, path := range fileList {
		src, err := readSource(ctx, path)
		if err != nil {
			return err
		}

		mod, err := rtlast.ParseModule(src)
		if err != nil {
			return err
		}

		directives, err := pragma.ScanLines(strings.Split(src, "\n"))
		if err != nil {
			return err
		}
		stagelog.Tracef(stagelog.StagePragma, "%s: %d pragma directives", path, len(directives))

		if err := registry.Add(bridgeModule(mod, directives)); err != nil {
			return err
		}
		rtlModules = append(rtlModules, mod)
		moduleDirectives[mod.Name] = directives
	}

	root, err := hierarchy.BuildTree(spec.TopModule, registry)
	if err != nil {
		return err
	}

	observe, control, controlType, err := hierarchy.BuildCatalogues(root)
	if err != nil {
		return err
	}
	stagelog.Tracef(stagelog.StageHierarchy, "observe width %d, control width %d", observe.MaxMSB()+1, control.MaxMSB()+1)

	result, err := transform.Run(spec.TopModule, rtlModules, moduleDirectives)
	if err != nil {
		return err
	}
	stagelog.Tracef(stagelog.StageTransform, "woven observe=%d control=%d", result.Totals.ObserveWidth, result.Totals.ControlWidth)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return asaperr.Wrap(asaperr.ConfigError, outDir, err)
	}

	var emitter rtlast.TextEmitter
	for _, mod := range rtlModules {
		info := result.Infos[mod.Name]
		if err := writeModule(emitter, outDir, info.Module); err != nil {
			return err
		}
	}

	iface := &catalogue.InterfaceFile{ObservabilityMap: observe, ControllabilityMap: control, ControlTypeMap: controlType}
	if err := catalogue.WriteInterfaceFile(filepath.Join(outDir, "interface.json"), iface); err != nil {
		return err
	}

	smuParams := smu.Params{SmuSegmentSize: spec.SMUSegmentSize, MaxSeqDepth: spec.MaxSeqDepth, MaxTriggers: spec.MaxTriggers}
	sruParams := sru.Params{SruSegmentSize: spec.SRUSegmentSize, SruNumPLA: spec.SRUNumPLA, MaxTriggers: spec.MaxTriggers}

	var smuStream smu.Stream
	var triggerIndex map[string]int
	var sruResult *sru.Result

	if spec.SequenceFile != "" {
		src, err := readSource(ctx, spec.SequenceFile)
		if err != nil {
			return err
		}
		seqList, err := smulang.Parse(src)
		if err != nil {
			return err
		}

		smuStream, triggerIndex, err = smu.Compile(seqList.Sequences, observe, smuParams)
		if err != nil {
			return err
		}
		stagelog.Tracef(stagelog.StageSMU, "%d triggers compiled", len(triggerIndex))

		if err := os.WriteFile(filepath.Join(outDir, "smu.stream"), []byte(smuStream.Spaced()+"\n"), 0o644); err != nil {
			return asaperr.Wrap(asaperr.ConfigError, outDir, err)
		}

		if spec.RewriteFile != "" {
			rsrc, err := readSource(ctx, spec.RewriteFile)
			if err != nil {
				return err
			}
			nodeList, err := srulang.Parse(rsrc)
			if err != nil {
				return err
			}

			sruResult, err = sru.Compile(nodeList.Nodes, control, controlType, triggerIndex, sruParams)
			if err != nil {
				return err
			}
			stagelog.Tracef(stagelog.StageSRU, "signals=%d clocks=%d", sruResult.NumSignal, sruResult.NumClock)

			if err := os.WriteFile(filepath.Join(outDir, "sru.stream"), []byte(sruResult.Stream.Spaced()+"\n"), 0o644); err != nil {
				return asaperr.Wrap(asaperr.ConfigError, outDir, err)
			}

			if err := writeTopPatch(outDir, spec, observe, control, controlType, sruResult); err != nil {
				return err
			}
		}
	}

	if interactive {
		console.Run(&console.Session{
			Observe:      observe,
			Control:      control,
			ControlType:  controlType,
			TriggerNames: triggerNames(triggerIndex),
			SMUStream:    smuStream,
			SMUParams:    smuParams,
			SRU:          sruResult,
			SRUParams:    sruParams,
		})
	}

	return nil
}

func writeModule(emitter rtlast.TextEmitter, outDir string, m *rtlast.Module) error {
	path := filepath.Join(outDir, m.Name+".v")
	f, err := os.Create(path)
	if err != nil {
		return asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	defer f.Close()
	return emitter.Emit(f, m)
}

func writeTopPatch(outDir string, spec *specfile.Spec, observe, control *catalogue.Tree, controlType *catalogue.TypeTree, sruResult *sru.Result) error {
	path := filepath.Join(outDir, "asapTop.v")
	f, err := os.Create(path)
	if err != nil {
		return asaperr.Wrap(asaperr.ConfigError, path, err)
	}
	defer f.Close()

	clockReorder, signalReorder := reorderEntries(control, controlType, sruResult.ReorderedControl)
	params := toppatch.Params{
		MaxSeqDepth:       spec.MaxSeqDepth,
		ObserveWidth:      observe.MaxMSB() + 1,
		MaxTriggers:       spec.MaxTriggers,
		NumClockControls:  sruResult.NumClock,
		NumSignalControls: sruResult.NumSignal,
		NumPLA:            spec.SRUNumPLA,
		SruSegmentSize:    spec.SRUSegmentSize,
		SmuSegmentSize:    spec.SMUSegmentSize,
		ClockReorder:      clockReorder,
		SignalReorder:     signalReorder,
	}
	return toppatch.Generate(f, params)
}
