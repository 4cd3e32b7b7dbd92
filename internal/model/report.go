package model

import "time"

type ToolRun struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	DurationMS   int64  `json:"durationMs"`
	FilesChecked int    `json:"filesChecked"`
}

type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Fixable  int `json:"fixable"`
}

type Report struct {
	Timestamp  time.Time `json:"timestamp"`
	RootDir    string    `json:"rootDir"`
	DurationMS int64     `json:"durationMs"`
	Linters    []ToolRun `json:"linters"`
	Issues     []Issue   `json:"issues"`
	Summary    Summary   `json:"summary"`
}

func Summarize(issues []Issue) Summary {
	s := Summary{Total: len(issues)}
	for _, is := range issues {
		switch is.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
		if is.Fixable() {
			s.Fixable++
		}
	}
	return s
}

func (r *Report) AllFailed() bool {
	if len(r.Linters) == 0 {
		return false
	}
	for _, lr := range r.Linters {
		if lr.Success {
			return false
		}
	}
	return true
}
