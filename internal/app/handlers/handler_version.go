package handlers

import (
	"net/http"

	"github.com/thushan/shifter/internal/version"
)

type versionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Repository  string `json:"repository"`
	Trigger     string `json:"trigger"`
}

func (a *Application) versionHandler(w http.ResponseWriter, r *http.Request) {
	resp := versionResponse{
		Name:        version.Name,
		Version:     version.Version,
		Commit:      version.Commit,
		Date:        version.Date,
		Description: version.Description,
		Repository:  version.GithubHomeUri,
		Trigger:     string(a.Config.Trigger),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		a.logger.Debug("Failed to write version response", "error", err)
	}
}
