//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-eq/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr, block := 48000.0, 128
		if len(args) > 0 {
			sr = args[0].Float()
		}
		if len(args) > 1 {
			block = args[1].Int()
		}
		e, err := webdemo.NewEngine(sr, block)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("setParam", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		v, err := engine.SetParam(args[0].String(), args[1].Float())
		if err != nil {
			return err.Error()
		}
		return v
	}))

	api.Set("setParamNormalized", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		v, err := engine.SetParamNormalized(args[0].String(), args[1].Float())
		if err != nil {
			return err.Error()
		}
		return v
	}))

	api.Set("getParam", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		v, err := engine.Param(args[0].String())
		if err != nil {
			return err.Error()
		}
		return v
	}))

	// process(left, right?) filters Float32Arrays in place.
	api.Set("process", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		left := copyIn(args[0])
		var right []float32
		if len(args) > 1 && !args[1].IsNull() && !args[1].IsUndefined() {
			right = copyIn(args[1])
		}
		engine.Process(left, right)
		copyOut(args[0], left)
		if right != nil {
			copyOut(args[1], right)
		}
		return js.Null()
	}))

	api.Set("responseCurve", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[0]
		freqs := make([]float64, input.Length())
		for i := 0; i < input.Length(); i++ {
			freqs[i] = input.Index(i).Float()
		}
		resp := engine.ResponseCurveDB(freqs)
		arr := js.Global().Get("Float32Array").New(len(resp))
		for i := range resp {
			arr.SetIndex(i, resp[i])
		}
		return arr
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine != nil {
			engine.Reset()
		}
		return js.Null()
	}))

	api.Set("describe", export(func(args []js.Value) any {
		if engine == nil {
			return ""
		}
		return engine.Describe()
	}))

	js.Global().Set("SimpleEQ", api)
	select {}
}

func copyIn(arr js.Value) []float32 {
	out := make([]float32, arr.Length())
	for i := range out {
		out[i] = float32(arr.Index(i).Float())
	}
	return out
}

func copyOut(arr js.Value, src []float32) {
	for i, v := range src {
		arr.SetIndex(i, v)
	}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
