package cmd

import (
	"testing"

	"github.com/gnames/gnplet/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRunCmd_Flags verifies flags of the run command.
func TestGetRunCmd_Flags(t *testing.T) {
	cmd := getRunCmd()
	assert.Equal(t, "run", cmd.Use)

	tests := []struct {
		name, short string
	}{
		{"input", "i"},
		{"output", "o"},
		{"formats", "f"},
		{"jobs", "j"},
		{"report", "r"},
		{"lookups", "l"},
		{"lookups-source", "s"},
		{"drained", ""},
	}
	for _, v := range tests {
		f := cmd.Flags().Lookup(v.name)
		require.NotNil(t, f, v.name)
		assert.Equal(t, v.short, f.Shorthand, v.name)
	}
}

// TestGetImportCmd_Flags verifies flags of the import command.
func TestGetImportCmd_Flags(t *testing.T) {
	cmd := getImportCmd()
	assert.Equal(t, "import", cmd.Use)
	assert.Contains(t, cmd.Aliases, "load")
	f := cmd.Flags().Lookup("lookups")
	require.NotNil(t, f)
	assert.Equal(t, "l", f.Shorthand)
}

// TestGetServeCmd_Flags verifies flags of the serve command.
func TestGetServeCmd_Flags(t *testing.T) {
	cmd := getServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Long, "/result")
	for _, name := range []string{"port", "jobs", "lookups", "lookups-source"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestFlagOptions(t *testing.T) {
	tests := []struct {
		msg   string
		flags map[string]string
		check func(*testing.T, *config.Config)
	}{
		{
			msg:   "nothing changed",
			flags: nil,
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, config.New().Lookups, c.Lookups)
				assert.Equal(t, 8080, c.Serve.Port)
			},
		},
		{
			msg:   "lookup directory",
			flags: map[string]string{"lookups": "/data/lookups"},
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "dir", c.Lookups.Source)
				assert.Equal(t, "/data/lookups", c.Lookups.Dir)
			},
		},
		{
			msg:   "lookup workbook",
			flags: map[string]string{"lookups": "/data/Lookups.XLSX"},
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "xlsx", c.Lookups.Source)
				assert.Equal(t, "/data/Lookups.XLSX", c.Lookups.XLSXPath)
			},
		},
		{
			msg:   "database source, port and jobs",
			flags: map[string]string{"lookups-source": "db", "port": "9000", "jobs": "3"},
			check: func(t *testing.T, c *config.Config) {
				assert.Equal(t, "db", c.Lookups.Source)
				assert.Equal(t, 9000, c.Serve.Port)
				assert.Equal(t, 3, c.JobsNumber)
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getServeCmd()
			for k, val := range v.flags {
				require.NoError(t, cmd.Flags().Set(k, val))
			}
			c := config.New()
			c.Update(flagOptions(cmd,
				portFlag, jobsFlag, lookupsFlag, lookupsSourceFlag))
			v.check(t, c)
		})
	}
}

func TestDrainedFlag(t *testing.T) {
	cmd := getRunCmd()
	assert.Nil(t, drainedFlag(cmd))

	require.NoError(t, cmd.Flags().Set("drained", "true"))
	c := config.New()
	c.Update(drainedFlag(cmd))
	assert.True(t, c.Model.Drained)
}
