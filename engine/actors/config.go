package actors

import (
	"os"
	"strings"

	"enginelab/engine/library"
	"github.com/spf13/viper"
)

// TestFireKind is the nostr event kind carrying a signed test-fire report.
const TestFireKind int = 641000

// EnvPrefix is prepended to every setting when read from the environment, e.g. ENGINELAB_LEVEL.
const EnvPrefix string = "ENGINELAB"

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetEnvPrefix(EnvPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	config.SetDefault("rootDir", homeDir+"/enginelab/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	SetDefaults(config)
	library.SetLogLevel(config.GetInt("logLevel"))
	// Create our working directory and config file if not exist
	initRootDir(config)
	touch(config.GetString("rootDir") + "config.yaml")
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 1)
	}
}

// SetDefaults registers every setting the bench reads. It does not touch the disk.
func SetDefaults(config *viper.Viper) {
	config.SetDefault("logLevel", 4)
	config.SetDefault("owner", "local")
	config.SetDefault("level", 1)
	// empty means the level's own propellant
	config.SetDefault("propellant", "")
	config.SetDefault("material", "steel")
	config.SetDefault("publish", false)
	config.SetDefault("relays", []string{})
	config.SetDefault("outboxSize", 8)
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.MkdirAll(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

func touch(name string) {
	f, err := os.OpenFile(name, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		library.LogCLI(err, 1)
		return
	}
	f.Close()
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	if conf == nil {
		conf = viper.New()
		SetDefaults(conf)
	}
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}
