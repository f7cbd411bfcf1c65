package types

import (
	"strconv"
	"time"
)

// Job is a single entry of a batch file
type Job struct {
	Name         string `yaml:"name"`
	Password     string `yaml:"password"`
	PasswordFile string `yaml:"password_file"`
	Expect       string `yaml:"expect"`
}

// Label returns the job name, or a placeholder built from its position
func (j Job) Label(index int) string {
	if j.Name != "" {
		return j.Name
	}
	if j.PasswordFile != "" {
		return j.PasswordFile
	}
	return "job-" + strconv.Itoa(index+1)
}

// Result represents the outcome of a single batch job
type Result struct {
	Job      Job
	Label    string
	Success  bool
	Error    error
	Digest   string
	Size     int  // password size in bytes after lowercasing
	Ignored  int  // lowercased bytes past the seed that do not affect the digest
	Verified bool // true if the job had an expected digest and it matched
	Elapsed  time.Duration
}
