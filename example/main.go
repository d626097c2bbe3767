// Example draws a rotating textured quad with a program chosen from a
// shader manifest.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run with the embedded shaders
//
// Flags:
//
//	-program name     program from the manifest (textured, inverse, yellow, solid)
//	-manifest file    use shaders from disk instead of the embedded set
//	-texture file     PNG or JPEG to draw instead of the built-in checkerboard
//	-v                debug logging
//
// Press Escape to quit.
package main

import (
	"embed"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "shader example"
)

//go:embed shaders
var embedded embed.FS

var (
	programName  = flag.String("program", "textured", "program to draw with")
	manifestPath = flag.String("manifest", "", "shader manifest on disk (default: embedded shaders)")
	texturePath  = flag.String("texture", "", "texture image (default: checkerboard)")
	verbose      = flag.Bool("v", false, "debug logging")
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	shader.SetVerbose(*verbose)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	prog, err := loadProgram(*programName)
	if err != nil {
		// No partial rendering without a program.
		return fmt.Errorf("shader program: %w", err)
	}
	defer prog.Release()

	transformLoc := gl.GetUniformLocation(prog.ID(), gl.Str("transform\x00"))

	tex, err := loadTexture(*texturePath)
	if err != nil {
		return err
	}
	defer tex.Delete()

	// Position (3) + texcoord (2).
	quad := opengl.NewMesh([]float32{
		-0.5, -0.5, 0, 0, 0,
		0.5, -0.5, 0, 1, 0,
		0.5, 0.5, 0, 1, 1,
		-0.5, 0.5, 0, 0, 1,
	}, []uint32{0, 1, 2, 0, 2, 3}, 3, 2)
	defer quad.Delete()

	// Main loop.
	for !window.ShouldClose() {
		glfw.PollEvents()

		gl.ClearColor(0.2, 0.3, 0.3, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		prog.Use()
		if transformLoc >= 0 {
			transform := mgl32.HomogRotate3DZ(float32(glfw.GetTime()))
			gl.UniformMatrix4fv(transformLoc, 1, false, &transform[0])
		}
		tex.Bind()
		quad.Draw()

		window.SwapBuffers()
	}

	return nil
}

// loadProgram builds the named program from the manifest selected by flags.
func loadProgram(name string) (*shader.Program, error) {
	var (
		manifest *shader.Manifest
		opts     []shader.Option
		err      error
	)
	if *manifestPath != "" {
		manifest, err = shader.LoadManifest(*manifestPath)
	} else {
		var sub fs.FS
		sub, err = fs.Sub(embedded, "shaders")
		if err != nil {
			return nil, err
		}
		opts = append(opts, shader.WithFS(sub))
		manifest, err = shader.LoadManifestFS(sub, "shaders.toml")
	}
	if err != nil {
		return nil, err
	}

	spec, ok := manifest.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no program %q in manifest", name)
	}
	return shader.NewBuilder(opengl.NewDriver(), opts...).Load(spec)
}

func loadTexture(path string) (*opengl.Texture, error) {
	if path != "" {
		return opengl.LoadTexture(path)
	}
	return opengl.NewTexture(checkerboard(256, 32)), nil
}

func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 230, G: 200, B: 120, A: 255}
	dark := color.RGBA{R: 60, G: 40, B: 90, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
