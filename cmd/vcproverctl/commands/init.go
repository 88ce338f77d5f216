package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aries-go/vcprover/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample vcprover configuration file.

By default, the configuration file is created at
$XDG_CONFIG_HOME/vcprover/config.yaml. Use --config to specify a custom path.

Examples:
  # Initialize with default location
  vcproverctl init

  # Initialize with custom path
  vcproverctl init --config /etc/vcprover/config.yaml

  # Force overwrite existing config
  vcproverctl init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		configPath, err = config.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file: ledger endpoint, agency URL, link secret alias")
	fmt.Println("  2. Start the agent with: vcproverctl start")
	fmt.Printf("  3. Or specify a custom config: vcproverctl start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random JWT secret was generated for the control-plane API.")
	fmt.Println("  For production, generate a secure secret instead:")
	fmt.Println("    export VCPROVER_CONTROLPLANE_JWT_SECRET=$(openssl rand -hex 32)")

	return nil
}
