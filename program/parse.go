package program

import (
	"cmp"
	"io"
	"iter"
	"log"
	"slices"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vm16/cpu"
	"github.com/ezrec/vm16/memory"
)

// Predeclared returns the symbols visible to a program file.
// Integer defines are added to the opcode and register symbols.
func Predeclared(defines iter.Seq2[string, string]) (pred starlark.StringDict) {
	pred = starlark.StringDict{
		"word": starlark.NewBuiltin("word", builtinWord),
	}
	for name, value := range cpu.Symbols() {
		pred[name] = starlark.MakeInt(int(value))
	}

	if defines == nil {
		return
	}

	for name, str := range defines {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			// Non-integer defines are not visible to programs.
			continue
		}
		pred[name] = starlark.MakeInt64(value)
	}

	return
}

// builtinWord implements word(v), returning [hi, lo].
func builtinWord(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &value)
	if err != nil {
		return nil, err
	}
	if value < 0 || value > 0xffff {
		return nil, ErrWordRange
	}

	hi, lo := memory.Split(uint16(value))
	return starlark.NewList([]starlark.Value{
		starlark.MakeInt(int(hi)),
		starlark.MakeInt(int(lo)),
	}), nil
}

// Parse executes the program file src, and collects its segments.
// The defines, which may be nil, are predeclared along with the opcode
// and register symbols.
func Parse(name string, src io.Reader, defines iter.Seq2[string, string]) (prog *Program, err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Name: name, Err: err}
		}
	}()

	thread := starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, Predeclared(defines))
	if err != nil {
		return
	}

	prog = &Program{Name: name}

	if st_mem, ok := globals["memory"]; ok {
		var size int
		size, err = starlark.AsInt32(st_mem)
		if err != nil || size < 0 || size > 0xffff {
			err = ErrMemorySize
			return
		}
		prog.Memory = size
	}

	st_prog, ok := globals["program"]
	if !ok {
		err = ErrProgramMissing
		return
	}
	dict, ok := st_prog.(*starlark.Dict)
	if !ok {
		err = ErrProgramType
		return
	}

	for _, item := range dict.Items() {
		var seg Segment
		seg, err = parseSegment(item[0], item[1])
		if err != nil {
			return
		}
		prog.Segments = append(prog.Segments, seg)
	}

	slices.SortFunc(prog.Segments, func(a, b Segment) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for n := 1; n < len(prog.Segments); n++ {
		prior := prog.Segments[n-1]
		if prior.End() > int(prog.Segments[n].Offset) {
			err = ErrSegment{Offset: int(prog.Segments[n].Offset), Err: ErrSegmentOverlap}
			return
		}
	}

	return
}

// parseSegment converts a program dict entry into a segment.
func parseSegment(key, value starlark.Value) (seg Segment, err error) {
	offset, err := starlark.AsInt32(key)
	if err != nil || offset < 0 || offset > 0xffff {
		err = ErrOffsetRange
		return
	}
	seg.Offset = uint16(offset)

	iterable, ok := value.(starlark.Iterable)
	if !ok {
		err = ErrSegment{Offset: offset, Err: ErrSegmentType}
		return
	}

	it := iterable.Iterate()
	defer it.Done()

	var elem starlark.Value
	for it.Next(&elem) {
		var b int
		b, err = starlark.AsInt32(elem)
		if err != nil {
			err = ErrSegment{Offset: offset, Err: ErrSegmentType}
			return
		}
		if b < 0 || b > 0xff {
			err = ErrSegment{Offset: offset, Err: ErrByteRange}
			return
		}
		seg.Data = append(seg.Data, byte(b))
	}

	if seg.End() > 0x10000 {
		err = ErrSegment{Offset: offset, Err: ErrOffsetRange}
	}

	return
}
