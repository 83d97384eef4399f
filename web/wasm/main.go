//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"errors"
	"syscall/js"

	"github.com/cwbudde/algo-playnoise/formats/wav"
	"github.com/cwbudde/algo-playnoise/internal/engine"
	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

var (
	eng   *engine.Engine
	funcs []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 44100.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := engine.NewEngine(sr)
		if err != nil {
			return err.Error()
		}
		eng = e
		return js.Null()
	}))

	api.Set("instruments", export(func([]js.Value) any {
		names := synth.InstrumentNames()
		arr := js.Global().Get("Array").New(len(names))
		for i, n := range names {
			arr.SetIndex(i, n)
		}
		return arr
	}))

	// render(source, instrument?) -> {left, right} Float32Arrays or an error string.
	api.Set("render", export(func(args []js.Value) any {
		out, err := render(args)
		if err != nil {
			return err.Error()
		}
		return stereoObject(out)
	}))

	// note(token, instrument?) -> {left, right} Float32Arrays for one note
	// given by name ("A4") or frequency ("440"), or an error string.
	api.Set("note", export(func(args []js.Value) any {
		if eng == nil || len(args) < 1 {
			return errNotReady.Error()
		}
		p := engine.RenderParams{}
		if len(args) > 1 && args[1].Type() == js.TypeString {
			p.Instrument = args[1].String()
		}
		out, err := eng.Note(context.Background(), args[0].String(), p)
		if err != nil {
			return err.Error()
		}
		return stereoObject(out)
	}))

	// save(source, instrument?, volume?) -> Uint8Array WAV file or an error string.
	api.Set("save", export(func(args []js.Value) any {
		out, err := render(args)
		if err != nil {
			return err.Error()
		}
		volume := float64(wav.DefaultVolume)
		if len(args) > 2 && args[2].Type() == js.TypeNumber {
			volume = args[2].Float()
		}
		buf, err := wav.Serialize(out.Left, out.Right, int(out.SampleRate), volume)
		if err != nil {
			return err.Error()
		}
		arr := js.Global().Get("Uint8Array").New(len(buf))
		js.CopyBytesToJS(arr, buf)
		return arr
	}))

	// analyze(Float32Array, sampleRate, method?) -> tracks JSON or an error string.
	api.Set("analyze", export(func(args []js.Value) any {
		if eng == nil || len(args) < 2 {
			return "engine not initialized"
		}
		input := args[0]
		samples := make([]float64, input.Length())
		for i := range samples {
			samples[i] = input.Index(i).Float()
		}
		p := engine.AnalyzeParams{}
		if len(args) > 2 {
			p.Method = args[2].String()
		}
		tracks, err := eng.Analyze(context.Background(), samples, args[1].Float(), p)
		if err != nil {
			return err.Error()
		}
		b, err := json.Marshal(tracks)
		if err != nil {
			return err.Error()
		}
		return string(b)
	}))

	js.Global().Set("PlayNoise", api)
	select {}
}

func render(args []js.Value) (tune.Stereo, error) {
	if eng == nil || len(args) < 1 {
		return tune.Stereo{}, errNotReady
	}
	p := engine.RenderParams{}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		p.Instrument = args[1].String()
	}
	return eng.Render(context.Background(), args[0].String(), p)
}

var errNotReady = errors.New("engine not initialized")

func stereoObject(out tune.Stereo) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("left", float32Array(out.Left))
	obj.Set("right", float32Array(out.Right))
	obj.Set("sampleRate", out.SampleRate)
	return obj
}

func float32Array(data []float64) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
