package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

var ServerScene *Scene

func StartServer(addr string, s *Scene, webPath string) error {
	ServerScene = s

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerAjaxScene)
	r.HandleFunc("/json/scene/{name}", HandlerAjaxSceneGeometry)
	r.HandleFunc("/dump/scene.glb", HandlerDumpSceneGLB)

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
