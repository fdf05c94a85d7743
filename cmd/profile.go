package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// ProfileFileName is the name of the optional build profile file searched for
// in the input file's directory.
const ProfileFileName = "false-mod.toml"

// BuildProfile represents the current build profile.  Command-line arguments
// always take precedence over profile values.
type BuildProfile struct {
	OutputPath string
	LogLevel   string
}

// tomlProfileFile represents the profile file as it is encoded in TOML.
type tomlProfileFile struct {
	Build *tomlBuild `toml:"build"`
}

// tomlBuild represents the build table of the profile file.
type tomlBuild struct {
	OutputPath string `toml:"output"`
	LogLevel   string `toml:"loglevel"`
}

// loadProfile loads the build profile beside the given input file, if one
// exists.  A missing profile file is not an error: it yields an empty profile.
func loadProfile(inputPath string) (*BuildProfile, error) {
	profPath := filepath.Join(filepath.Dir(inputPath), ProfileFileName)

	if _, err := os.Stat(profPath); err != nil {
		return &BuildProfile{}, nil
	}

	tree, err := toml.LoadFile(profPath)
	if err != nil {
		return nil, err
	}

	var profFile tomlProfileFile
	if err := tree.Unmarshal(&profFile); err != nil {
		return nil, err
	}

	prof := &BuildProfile{}
	if profFile.Build != nil {
		prof.OutputPath = profFile.Build.OutputPath
		prof.LogLevel = profFile.Build.LogLevel
	}

	return prof, nil
}
