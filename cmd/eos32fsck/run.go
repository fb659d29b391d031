package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eos32fs/fsck/backend"
	"github.com/eos32fs/fsck/backend/file"
	"github.com/eos32fs/fsck/eos32fs"
	"github.com/eos32fs/fsck/internal/exitcode"
	"github.com/eos32fs/fsck/partition"
)

var (
	log = logrus.New()

	flagVerbose bool
	flagQuiet   bool
)

// rootCmd is the eos32fsck command: <image> <partition>, the same
// two-positional-argument shape github.com/spf13/cobra's examples give a
// single-purpose CLI, borrowed here from github.com/vorteil/vorteil's
// rootCmd/commandInit split.
var rootCmd = &cobra.Command{
	Use:           "eos32fsck <image> <partition>",
	Short:         "Check an EOS32 filesystem for structural consistency",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return &BadArityError{}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetLevel(logrus.DebugLevel)
		}
		if flagQuiet {
			log.SetLevel(logrus.ErrorLevel)
		}
		return checkImage(args[0], args[1], log)
	},
}

func init() {
	log.SetLevel(logrus.WarnLevel)
	// Stop flag parsing at the first positional argument, so a partition
	// argument such as "-1" reaches resolvePartition (exit 4) instead of
	// being rejected as an unknown shorthand flag.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log each sweep phase as it runs")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
}

// run parses argv, runs the consistency check, and returns the process
// exit code spec section 6 assigns to the outcome. It may be called more
// than once in a single process (tests do), so flag registration happens
// once in init rather than here.
func run(argv []string) int {
	flagVerbose, flagQuiet = false, false
	rootCmd.SetArgs(argv)

	err := rootCmd.Execute()
	if err == nil {
		if !flagQuiet {
			fmt.Println("OK")
		}
		return exitcode.OK
	}

	fmt.Println(err)
	if coded, ok := err.(exitcode.Coded); ok {
		return coded.ExitCode()
	}
	return exitcode.IoAndUnclassified
}

// checkImage opens the image, resolves the requested partition to a
// filesystem region, and runs the consistency engine over it.
func checkImage(imagePath, partitionArg string, log logrus.FieldLogger) error {
	storage, err := file.OpenFromPath(imagePath)
	if err != nil {
		return NewImageOpenError(imagePath, err)
	}
	defer storage.Close()

	startSector, sizeSectors, err := resolvePartition(storage, partitionArg)
	if err != nil {
		return err
	}

	scoped := backend.Sub(storage, int64(startSector)*partition.SectorSize, int64(sizeSectors)*partition.SectorSize)
	return eos32fs.Run(scoped, sizeSectors, log)
}

// resolvePartition implements spec section 6's partition selector rules:
// "*" selects the whole image as one filesystem; a decimal string in
// [0,15] selects that partition table entry.
func resolvePartition(storage backend.Storage, arg string) (startSector, sizeSectors uint32, err error) {
	if arg == "*" {
		info, err := storage.Stat()
		if err != nil {
			return 0, 0, NewImageOpenError("", err)
		}
		return 0, uint32(info.Size() / partition.SectorSize), nil
	}

	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 || index >= partition.MaxEntries {
		return 0, 0, partition.NewIllegalPartitionError(arg)
	}

	buf := make([]byte, partition.SectorSize)
	n, err := storage.ReadAt(buf, partition.SectorSize)
	if err != nil || n != partition.SectorSize {
		return 0, 0, partition.NewShortTableError(n)
	}

	table, err := partition.TableFromBytes(buf)
	if err != nil {
		return 0, 0, err
	}
	return table.Select(index)
}
