package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

type Result struct {
	Ok     bool         `json:"ok"`
	Err    *string      `json:"error,omitempty"`
	Result *interface{} `json:"result,omitempty"`
}

func writeResult(w http.ResponseWriter, statusCode int, result *Result) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, http.StatusText(http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func WriteOK(w http.ResponseWriter) {
	writeResult(w, http.StatusOK, &Result{
		Ok: true,
	})
}

func WriteError(w http.ResponseWriter, statusCode int, errorMessage string) {
	writeResult(w, statusCode, &Result{
		Ok:  false,
		Err: &errorMessage,
	})
}

func WriteJson(w http.ResponseWriter, res interface{}) {
	writeResult(w, http.StatusOK, &Result{
		Ok:     true,
		Result: &res,
	})
}

func WriteStatus(w http.ResponseWriter, statusCode int) {
	WriteError(w, statusCode, http.StatusText(statusCode))
}

func WriteNotFound(w http.ResponseWriter) {
	WriteStatus(w, http.StatusNotFound)
}

func WriteInternalServerError(w http.ResponseWriter) {
	WriteStatus(w, http.StatusInternalServerError)
}
