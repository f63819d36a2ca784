package jobqueue

import (
	"os"

	"github.com/Hubcapp/qdirstat/internal/fsscan"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

func applyStat(n *tree.Node, st fsscan.Stat) {
	n.Size = st.Size
	n.MTime = st.MTime
	n.Mode = os.FileMode(st.Mode)
	n.UID = st.UID
	n.GID = st.GID
	n.Dev = st.Dev
	n.Ino = st.Ino
	n.Nlink = st.Nlink
}

func statToDirNode(name string, st fsscan.Stat) *tree.Node {
	n := tree.NewDir(name)
	applyStat(n, st)
	return n
}

func statToFileNode(name string, st fsscan.Stat) *tree.Node {
	n := tree.NewFile(name)
	applyStat(n, st)
	return n
}
