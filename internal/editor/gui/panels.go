package gui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/mini-engine/internal/editor"
	"github.com/Faultbox/mini-engine/internal/engine/lighting"
	"github.com/Faultbox/mini-engine/internal/logger"
	"github.com/Faultbox/mini-engine/pkg/math"
)

const (
	dragPosition = 0.1
	dragRotation = 1.0
	dragScale    = 0.1
	minScale     = 0.1
	maxScale     = 10.0
)

var selectedColor = imgui.NewVec4(1.0, 0.8, 0.2, 1.0)

func placeWindow(x, y, w, h float32) {
	imgui.SetNextWindowPosV(imgui.NewVec2(x, y), imgui.ConditionFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(w, h), imgui.ConditionFirstUseEver)
}

func dragTransform(position, rotation, scale *[3]float32) {
	imgui.DragFloat3V("Position", position, dragPosition, 0, 0, "%.2f", imgui.SliderFlagsNone)
	imgui.DragFloat3V("Rotation", rotation, dragRotation, 0, 0, "%.1f", imgui.SliderFlagsNone)
	imgui.DragFloat3V("Scale", scale, dragScale, minScale, maxScale, "%.2f", imgui.SliderFlagsNone)
}

func (a *App) drawLights() {
	e := a.editor
	placeWindow(10, 10, 330, 420)
	if imgui.BeginV("Lights", nil, 0) {
		if imgui.Button("Add Light") {
			e.AddLight()
		}
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("%d / %d", len(e.Scene.Lights), lighting.MaxLights))
		imgui.Checkbox("Show markers", &a.renderer.LightMarkers)

		for i := 0; i < len(e.Scene.Lights); i++ {
			l := &e.Scene.Lights[i]
			imgui.PushIDInt(int32(i))
			if imgui.CollapsingHeaderTreeNodeFlagsV(fmt.Sprintf("Light %d", i+1), imgui.TreeNodeFlagsNone) {
				dragTransform(&l.Position, &l.Rotation, &l.Scale)
				imgui.ColorEdit3("Color", &l.Color)
				imgui.DragFloatV("Intensity", &l.Intensity, 0.1, 0, 10, "%.2f", imgui.SliderFlagsNone)

				if imgui.Button("Duplicate") {
					e.DuplicateLight(i)
				}
				imgui.SameLine()
				if imgui.Button("Delete") {
					e.DeleteLight(i)
					imgui.PopID()
					break
				}
			}
			imgui.PopID()
		}
	}
	imgui.End()
}

func (a *App) drawModelImporter() {
	e := a.editor
	placeWindow(10, 440, 330, 380)
	if imgui.BeginV("Model Importer", nil, 0) {
		if imgui.InputTextWithHint("Model Path", "models/cube.obj", &e.ImportPath, imgui.InputTextFlagsEnterReturnsTrue, nil) {
			_ = e.ImportModel()
		}
		if imgui.Button("Browse...") {
			a.models.Open(e.ResourcesDir())
		}
		if imgui.IsItemHovered() && !a.models.Busy() {
			imgui.SetTooltip("Pick a model file under " + e.ResourcesDir())
		}
		imgui.SameLine()
		if imgui.Button("Load Model") {
			_ = e.ImportModel()
		}

		imgui.Separator()
		a.drawModelList()
	}
	imgui.End()
}

func (a *App) drawModelList() {
	e := a.editor
	for i := 0; i < len(e.Scene.Models); i++ {
		m := e.Scene.Models[i]
		flags := imgui.TreeNodeFlagsNone
		if m == e.Selected {
			flags |= imgui.TreeNodeFlagsSelected
		}
		if e.TakeOpenRequest(m) {
			imgui.SetNextItemOpen(true)
		}

		open := imgui.TreeNodeExStrV(fmt.Sprintf("Model %d##%s", i+1, m.ID), flags)
		if imgui.IsItemClicked() {
			e.Select(i)
		}
		if !open {
			continue
		}

		imgui.PushIDStr(m.ID.String())
		imgui.TextDisabled(m.Path)
		dragTransform(&m.Position, &m.Rotation, &m.ScaleFactor)
		imgui.Text(fmt.Sprintf("%d meshes, %d triangles", len(m.Meshes), m.TriangleCount()))

		if imgui.Button("Focus") {
			b := m.WorldBounds()
			center := math.V3(b.Min).Add(math.V3(b.Max)).Scale(0.5)
			e.Camera.Focus(center, math.V3(b.Max).Distance(center))
		}
		imgui.SameLine()
		if imgui.Button("Duplicate") {
			_ = e.DuplicateModel(i)
		}
		imgui.SameLine()
		deleted := imgui.Button("Delete")
		imgui.PopID()
		imgui.TreePop()

		if deleted {
			e.DeleteModel(i)
			break
		}
	}
}

func (a *App) drawScene() {
	e := a.editor
	placeWindow(350, 10, 320, 130)
	if imgui.BeginV("Scene", nil, 0) {
		imgui.InputTextWithHint("Scene File", "test.json", &e.SceneName, 0, nil)
		if imgui.Button("Browse...") {
			a.scenes.Open(e.SavesDir())
		}
		imgui.SameLine()
		if imgui.Button("Save Scene") {
			if e.SaveScene() == nil {
				a.backend.SetWindowTitle(WindowTitle + " - " + e.SceneName)
			}
		}
		imgui.SameLine()
		if imgui.Button("Load Scene") {
			if _, err := e.LoadScene(); err == nil {
				a.backend.SetWindowTitle(WindowTitle + " - " + e.SceneName)
			}
		}
	}
	imgui.End()
}

func (a *App) drawConsole() {
	console := logger.Console
	if console == nil {
		return
	}
	placeWindow(350, 600, 640, 200)
	if imgui.BeginV("Console", nil, 0) {
		if imgui.Button("Clear") {
			console.Clear()
		}
		imgui.SameLine()
		imgui.Checkbox("Auto-scroll", &a.consoleFollow)
		imgui.Separator()

		if imgui.BeginChildStrV("ConsoleLines", imgui.NewVec2(0, 0), imgui.ChildFlagsNone, imgui.WindowFlagsHorizontalScrollbar) {
			for _, line := range console.Lines() {
				imgui.TextUnformatted(line)
			}
			if seq := console.Seq(); a.consoleFollow && seq != a.consoleSeq {
				a.consoleSeq = seq
				imgui.SetScrollHereYV(1.0)
			}
		}
		imgui.EndChild()
	}
	imgui.End()
}

func (a *App) drawStats(width float32) {
	if !a.showStats {
		return
	}
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs
	imgui.SetNextWindowPos(imgui.NewVec2(width-230, 10))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("##Stats", nil, flags) {
		st := a.editor.Scene.Stats()
		imgui.Text(fmt.Sprintf("%.0f FPS", imgui.CurrentIO().Framerate()))
		imgui.Text(fmt.Sprintf("Models: %d  Meshes: %d", st.Models, st.Meshes))
		imgui.Text(fmt.Sprintf("Triangles: %d", st.Triangles))
		imgui.Text(fmt.Sprintf("Lights: %d / %d", st.Lights, lighting.MaxLights))

		mode := a.editor.Cursor.Mode()
		if mode == editor.CameraMode {
			imgui.TextColored(selectedColor, "Camera mode (Space for UI)")
		} else {
			imgui.Text("UI mode (Space for camera)")
		}
	}
	imgui.End()
}

func (a *App) drawNotice(width float32) {
	if !a.notice.visible() {
		return
	}
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(width/2-150, 10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notice", nil, flags) {
		imgui.Text(a.notice.text)
	}
	imgui.End()
}
