package app

import (
	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/types"
)

type ValidateRequest struct {
	Config types.InstallerConfig
}

type ValidateResult struct {
	Requested int
	Warnings  []string
}

type ListRequest struct {
	Config types.InstallerConfig
}

type ListResult struct {
	List        types.ModList
	ModListPath string
}

type ResolveRequest struct {
	Config types.InstallerConfig
}

type ResolveResult struct {
	Requested    []types.ModID
	Dependencies []types.ModID
	InstallList  []types.ModID
	Tree         types.DependencyTree
	Files        []string
}

type InstallRequest struct {
	Config types.InstallerConfig
}

type InstallResult struct {
	Requested    []types.ModID
	Dependencies []types.ModID
	InstallList  []types.ModID
	Duplicates   map[types.ModID]int
	Report       types.InstallReport
	WorkshopPath string
	Flatten      ports.FlattenResult
	Files        []string
}

type FlattenRequest struct {
	Config types.InstallerConfig
}

type FlattenResult struct {
	WorkshopPath string
	DestDir      string
	Result       ports.FlattenResult
}

type RetryFailedRequest struct {
	Config types.InstallerConfig
}

type RetryFailedResult struct {
	Retried      []types.ModID
	Report       types.InstallReport
	WorkshopPath string
	Flatten      ports.FlattenResult
	Files        []string
}
