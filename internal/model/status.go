package model

// Status identifies one progress line printed while a project is created.
type Status int

const (
	StatusStart Status = iota
	StatusCloning
	StatusCopying
	StatusFilesCopied
	StatusInstalling
	StatusPackagesInstalled
	StatusInstallSkipped
	StatusInstallFailed
	StatusDone
)

// statusFormats holds printf-style formats, indexed by Status.
// Arguments per status:
//
//	StatusStart             project path
//	StatusCloning           repository URL
//	StatusFilesCopied       file count
//	StatusInstalling        package manager
//	StatusInstallFailed     underlying error, package manager (printed as a warning)
//	StatusDone              project name, project path
var statusFormats = map[Status]string{
	StatusStart:             "Creating a new TypeScript CLI app in %s.",
	StatusCloning:           "Cloning %s...",
	StatusCopying:           "Copying template files...",
	StatusFilesCopied:       "Copied %d files.",
	StatusInstalling:        "Installing packages with %s. This might take a couple of minutes.",
	StatusPackagesInstalled: "Packages installed.",
	StatusInstallSkipped:    "Skipping package installation.",
	StatusInstallFailed:     "package installation failed (%v). Run \"%s install\" inside the project to retry.",
	StatusDone:              "Success! Created %s at %s",
}

// Format returns the printf-style format for the status line.
func (s Status) Format() string {
	if f, ok := statusFormats[s]; ok {
		return f
	}
	return ""
}

// NextSteps returns the commands suggested once a project is ready.
// changeDir is empty when the project was created in the current directory.
func NextSteps(changeDir, packageManager string, installed bool) []string {
	var steps []string
	if changeDir != "" {
		steps = append(steps, "cd "+changeDir)
	}
	if !installed {
		steps = append(steps, packageManager+" install")
	}
	steps = append(steps,
		packageManager+" run build",
		packageManager+" start",
	)
	return steps
}
