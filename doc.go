/*
Package shader loads, compiles and links GPU shading programs and owns the
resulting native program objects.

# Overview

A program is built in three steps, each reporting failure as an error:

	source text --(Compile x2)--> Stage --(Link)--> Program

The native API sits behind the Driver interface. backend/opengl provides
the OpenGL 4.1 implementation; tests use a fake driver that counts live
objects.

# Quick Start

	// After creating the window and calling gl.Init on the main thread:
	b := shader.NewBuilder(opengl.NewDriver())

	prog, err := b.FromFiles("shaders/quad.vert", "shaders/quad.frag")
	if err != nil {
	    return err // the log has already been written
	}
	defer prog.Release()

	for !window.ShouldClose() {
	    prog.Use()
	    mesh.Draw()
	    window.SwapBuffers()
	}

# Ownership

Link consumes both stages and deletes them whether or not linking
succeeds. A Program owns exactly one native program; Release frees it
once and further calls do nothing. Move hands ownership to a new value
and leaves the old one null, so releasing the old one is harmless.

# Errors

Every failure matches one of ErrSourceUnavailable, ErrCompileFailed,
ErrProgramAllocationFailed or ErrLinkFailed with errors.Is. Compile and
link failures are *DiagnosticError values carrying the driver log, which
is always read before the failing object is deleted.

# WGSL

Files ending in .wgsl are translated to GLSL with naga before they reach
the driver. A single WGSL module may provide both stages:

	prog, err := b.FromWGSL(src, "vs_main", "fs_main")

# Threading

OpenGL contexts are bound to one OS thread. Lock the main goroutine with
runtime.LockOSThread in an init function and make every Builder and
Program call from it.
*/
package shader
