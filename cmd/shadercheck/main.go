// Command shadercheck compiles and links shader programs against the local
// OpenGL driver without opening a visible window, and reports the driver's
// diagnostics. It exits non-zero if any program fails.
//
// Usage:
//
//	shadercheck [-v] [-out dir] vertex fragment [vertex fragment ...]
//	shadercheck [-v] [-out dir] -manifest shaders.toml
//
// With -out, each program that links is drawn on a full-viewport quad and
// saved as dir/<name>.jpg.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

const previewSize = 256

var (
	manifestPath = flag.String("manifest", "", "shader manifest to check")
	outDir       = flag.String("out", "", "directory for preview images")
	verbose      = flag.Bool("v", false, "debug logging")
)

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	shader.SetVerbose(*verbose)

	specs, err := programSpecs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}

	failed, err := run(specs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed > 0 {
		fmt.Printf("\n%d of %d programs failed\n", failed, len(specs))
		os.Exit(1)
	}
	fmt.Printf("\n%d programs OK\n", len(specs))
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: shadercheck [-v] [-out dir] vertex fragment [vertex fragment ...]")
	fmt.Fprintln(os.Stderr, "       shadercheck [-v] [-out dir] -manifest shaders.toml")
	flag.PrintDefaults()
}

func programSpecs() ([]shader.ProgramSpec, error) {
	if *manifestPath != "" {
		if flag.NArg() > 0 {
			return nil, errors.New("-manifest and source arguments are exclusive")
		}
		m, err := shader.LoadManifest(*manifestPath)
		if err != nil {
			return nil, err
		}
		return m.Programs, nil
	}

	args := flag.Args()
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errors.New("expected vertex/fragment pairs")
	}
	specs := make([]shader.ProgramSpec, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		specs = append(specs, shader.ProgramSpec{
			Name:     programName(args[i], args[i+1]),
			Vertex:   args[i],
			Fragment: args[i+1],
		})
	}
	return specs, nil
}

func programName(vertex, fragment string) string {
	base := func(p string) string {
		return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	if v, f := base(vertex), base(fragment); v != f {
		return v + "+" + f
	}
	return base(vertex)
}

func run(specs []shader.ProgramSpec) (failed int, err error) {
	if err := glfw.Init(); err != nil {
		return 0, fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(previewSize, previewSize, "shadercheck", nil, nil)
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return 0, fmt.Errorf("gl init: %w", err)
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return 0, fmt.Errorf("mkdir: %w", err)
		}
	}

	b := shader.NewBuilder(opengl.NewDriver())
	for _, spec := range specs {
		prog, err := b.Load(spec)
		if err != nil {
			failed++
			fmt.Printf("FAIL %s\n%s\n", spec.Name, indent(diagnostic(err)))
			continue
		}
		fmt.Printf("ok   %s (program %d)\n", spec.Name, prog.ID())

		if *outDir != "" {
			path := filepath.Join(*outDir, spec.Name+".jpg")
			if err := preview(prog, path); err != nil {
				prog.Release()
				return failed, fmt.Errorf("preview %s: %w", spec.Name, err)
			}
		}
		prog.Release()
	}
	return failed, nil
}

// diagnostic returns the driver log for compile and link failures and the
// error text otherwise.
func diagnostic(err error) string {
	var diag *shader.DiagnosticError
	if errors.As(err, &diag) && strings.TrimSpace(diag.Log) != "" {
		return fmt.Sprintf("%s %s: %s", diag.Op, diag.Kind, strings.TrimSpace(diag.Log))
	}
	return err.Error()
}

func indent(s string) string {
	return "     " + strings.ReplaceAll(s, "\n", "\n     ")
}

// preview draws prog on a full-viewport quad and writes the frame as JPEG.
func preview(prog *shader.Program, path string) error {
	quad := opengl.NewMesh([]float32{
		-1, -1, 0, 0, 0,
		1, -1, 0, 1, 0,
		1, 1, 0, 1, 1,
		-1, 1, 0, 0, 1,
	}, []uint32{0, 1, 2, 0, 2, 3}, 3, 2)
	defer quad.Delete()

	tex := opengl.NewTexture(gradient(64))
	defer tex.Delete()

	gl.Viewport(0, 0, previewSize, previewSize)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	prog.Use()
	if loc := gl.GetUniformLocation(prog.ID(), gl.Str("transform\x00")); loc >= 0 {
		identity := mgl32.Ident4()
		gl.UniformMatrix4fv(loc, 1, false, &identity[0])
	}
	tex.Bind()
	quad.Draw()
	gl.Finish()

	pixels := make([]byte, previewSize*previewSize*4)
	gl.ReadPixels(0, 0, previewSize, previewSize, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	img := image.NewRGBA(image.Rect(0, 0, previewSize, previewSize))
	rowLen := previewSize * 4
	for y := 0; y < previewSize; y++ {
		src := (previewSize - 1 - y) * rowLen
		copy(img.Pix[y*rowLen:(y+1)*rowLen], pixels[src:src+rowLen])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func gradient(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / (size - 1)),
				G: uint8(y * 255 / (size - 1)),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}
