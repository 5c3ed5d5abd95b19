package web

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/mesh2sdf/utils"
	"github.com/mogaika/mesh2sdf/webutils"
)

type ajaxGeometry struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Positions []float32 `json:"positions"`
	Indices   []uint32  `json:"indices"`
}

type ajaxScene struct {
	Model      string         `json:"model"`
	Descriptor string         `json:"descriptor"`
	Geometries []ajaxGeometry `json:"geometries"`
}

func ajaxSceneFrom(s *Scene) *ajaxScene {
	out := &ajaxScene{
		Model:      s.Doc.Model.Name,
		Descriptor: s.Path,
		Geometries: make([]ajaxGeometry, 0, len(s.Geometries)),
	}
	for _, g := range s.Geometries {
		out.Geometries = append(out.Geometries, ajaxGeometry{
			Name:      g.Name,
			Kind:      g.Kind,
			Positions: utils.FlattenVec3Array(g.Vertices),
			Indices:   utils.FlattenFaceArray(g.Faces),
		})
	}
	return out
}

func HandlerAjaxScene(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, ajaxSceneFrom(ServerScene))
}

func HandlerAjaxSceneGeometry(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	for _, g := range ServerScene.Geometries {
		if g.Name == name {
			webutils.WriteJson(w, ajaxGeometry{
				Name:      g.Name,
				Kind:      g.Kind,
				Positions: utils.FlattenVec3Array(g.Vertices),
				Indices:   utils.FlattenFaceArray(g.Faces),
			})
			return
		}
	}
	webutils.WriteError(w, errors.Errorf("No geometry %q in scene", name))
}

func HandlerDumpSceneGLB(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := ExportGLB(&buf, ServerScene); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, ServerScene.Doc.Model.Name+".glb")
}
