package main

import (
	"embed"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

func serve(addr string) {
	http.HandleFunc("/", uploadHandler)
	log.Printf("upload UI on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

// uploadHandler accepts one target region table, stores it under a
// dated public directory and runs the batch on it against the
// configured reference tables.
func uploadHandler(w http.ResponseWriter, r *http.Request) {
	templateData, err := templateFiles.ReadFile("templates/upload.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tmpl, err := template.New("home").Parse(string(templateData))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method == "GET" {
		err = tmpl.Execute(w, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if r.Method == "POST" {
		err := r.ParseMultipartForm(32 << 20)
		if err != nil {
			log.Println("Error parsing the form:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var reference = r.FormValue("reference")
		file, handler, err := r.FormFile("file")
		if err != nil {
			log.Println("Error retrieving the file:", err)
			return
		}
		defer file.Close()

		var date = time.Now().Format("20060102")
		var inputDir = filepath.Join("public", date, "input")
		err = os.MkdirAll(inputDir, 0755)
		if err != nil {
			log.Println("Error mkdir:", inputDir, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var uploadFile = filepath.Join(inputDir, handler.Filename)
		f, err := os.OpenFile(uploadFile, os.O_WRONLY|os.O_CREATE, 0666)
		if err != nil {
			log.Println("Error saving the file:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer f.Close()

		_, err = io.Copy(f, file)
		if err != nil {
			log.Println("Error copying the file:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var cmd = exec.Command(
			ex,
			"-ref", reference,
			"-i", inputDir,
			"-o", filepath.Join("public", date, "result"),
			"-plot",
		)
		cmd.Stderr = os.Stderr
		cmd.Stdout = os.Stdout
		log.Println(cmd)
		err = cmd.Run()
		if err != nil {
			log.Println("Error run TPMAnalysis:", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		err = tmpl.Execute(w, date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
