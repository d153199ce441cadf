package fontadopt

import (
	"fmt"
	"log/slog"

	"gloss/internal/assetgraph"
	"gloss/internal/logging"
	"gloss/internal/services"
)

// TMP_FontAsset is the script type a font-asset candidate must declare;
// the path-id filter alone admits false positives.
const fontAssetScript = "TMP_FontAsset"

// Underlay offsets forced onto every listed material when the
// properties exist. Tuned for the replacement font's outline.
const (
	underlayOffsetXProp = "_UnderlayOffsetX"
	underlayOffsetYProp = "_UnderlayOffsetY"
	underlayOffsetX     = 0.1
	underlayOffsetY     = -0.1
)

// Summary counts the transplants performed.
type Summary struct {
	FontAssets int
	Textures   int
	Materials  int
}

type namedKey struct {
	pathID int64
	name   string
}

type graphMaps struct {
	fonts     map[int64]assetgraph.Object
	textures  map[namedKey]assetgraph.Object
	materials map[namedKey]assetgraph.Object
}

// Run transplants donor font content into the target container. Every
// zipped mapping is resolved before anything is written, so an invalid
// mapping aborts with the target untouched.
func Run(target, donor assetgraph.Container, cfg *Config, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldComponent, "fontadopt"))

	donorMaps := buildMaps(donor, cfg.Source)
	targetMaps := buildMaps(target, cfg.Target)

	plan, err := resolvePlan(cfg, donorMaps, targetMaps)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{}
	for _, pair := range plan.fonts {
		if err := adoptFontAsset(pair.donor, pair.target); err != nil {
			return summary, services.Wrap(services.ErrValidation, "font", "font asset",
				fmt.Sprintf("transplant %d->%d", pair.donor.PathID(), pair.target.PathID()), err)
		}
		logger.Info("modified font asset",
			logging.Int64("donor_path_id", pair.donor.PathID()),
			logging.Int64(logging.FieldPathID, pair.target.PathID()))
		summary.FontAssets++
	}
	for _, pair := range plan.textures {
		if err := copyTexture(pair.donor, pair.target); err != nil {
			return summary, services.Wrap(services.ErrValidation, "font", "texture",
				fmt.Sprintf("transplant %d->%d", pair.donor.PathID(), pair.target.PathID()), err)
		}
		logger.Info("modified texture",
			logging.Int64("donor_path_id", pair.donor.PathID()),
			logging.Int64(logging.FieldPathID, pair.target.PathID()))
		summary.Textures++
	}
	for _, material := range plan.materials {
		patched, err := patchMaterial(material)
		if err != nil {
			return summary, services.Wrap(services.ErrValidation, "font", "material",
				fmt.Sprintf("patch %d", material.PathID()), err)
		}
		if patched {
			logger.Info("modified material", logging.Int64(logging.FieldPathID, material.PathID()))
			summary.Materials++
		}
	}
	return summary, nil
}

type objectPair struct {
	donor  assetgraph.Object
	target assetgraph.Object
}

type plan struct {
	fonts     []objectPair
	textures  []objectPair
	materials []assetgraph.Object
}

// resolvePlan resolves every positionally-zipped mapping up front. A
// section whose scan produced nothing on a required side is skipped
// whole; inside an active section any unresolved member is fatal.
func resolvePlan(cfg *Config, donorMaps, targetMaps graphMaps) (plan, error) {
	var p plan

	if cfg.Source.FontAssets != nil && cfg.Target.FontAssets != nil &&
		len(donorMaps.fonts) > 0 && len(targetMaps.fonts) > 0 {
		for i, donorID := range cfg.Source.FontAssets.PathIDs {
			targetID := cfg.Target.FontAssets.PathIDs[i]
			donorObj, donorOK := donorMaps.fonts[donorID]
			targetObj, targetOK := targetMaps.fonts[targetID]
			if !donorOK || !targetOK {
				return plan{}, services.Wrap(services.ErrMapping, "font", "font asset",
					fmt.Sprintf("path id mapping %d->%d is invalid", donorID, targetID), nil)
			}
			p.fonts = append(p.fonts, objectPair{donor: donorObj, target: targetObj})
		}
	}

	if cfg.Source.Textures != nil && cfg.Target.Textures != nil &&
		len(donorMaps.textures) > 0 && len(targetMaps.textures) > 0 {
		for i, donorID := range cfg.Source.Textures.PathIDs {
			donorKey := namedKey{pathID: donorID, name: cfg.Source.Textures.Names[i]}
			targetKey := namedKey{pathID: cfg.Target.Textures.PathIDs[i], name: cfg.Target.Textures.Names[i]}
			donorObj, donorOK := donorMaps.textures[donorKey]
			targetObj, targetOK := targetMaps.textures[targetKey]
			if !donorOK || !targetOK {
				return plan{}, services.Wrap(services.ErrMapping, "font", "texture",
					fmt.Sprintf("path id mapping %d->%d is invalid", donorID, targetKey.pathID), nil)
			}
			p.textures = append(p.textures, objectPair{donor: donorObj, target: targetObj})
		}
	}

	if cfg.Target.Materials != nil && len(targetMaps.materials) > 0 {
		for i, targetID := range cfg.Target.Materials.PathIDs {
			key := namedKey{pathID: targetID, name: cfg.Target.Materials.Names[i]}
			material, ok := targetMaps.materials[key]
			if !ok {
				return plan{}, services.Wrap(services.ErrMapping, "font", "material",
					fmt.Sprintf("path id mapping %d is invalid", targetID), nil)
			}
			p.materials = append(p.materials, material)
		}
	}

	return p, nil
}

// buildMaps scans a container once and indexes the objects the config
// addresses, filtering by kind, listed path id and, where applicable,
// object name.
func buildMaps(container assetgraph.Container, ns Namespace) graphMaps {
	maps := graphMaps{
		fonts:     make(map[int64]assetgraph.Object),
		textures:  make(map[namedKey]assetgraph.Object),
		materials: make(map[namedKey]assetgraph.Object),
	}
	fontIDs := idSet(ns.FontAssets)
	textureIDs := namedSet(ns.Textures)
	materialIDs := namedSet(ns.Materials)

	for _, obj := range container.Objects() {
		switch obj.Kind() {
		case assetgraph.KindMonoBehaviour:
			if _, listed := fontIDs[obj.PathID()]; !listed {
				continue
			}
			if obj.ScriptName() != fontAssetScript {
				continue
			}
			maps.fonts[obj.PathID()] = obj
		case assetgraph.KindTexture2D:
			indexNamed(maps.textures, obj, textureIDs, ns.Textures)
		case assetgraph.KindMaterial:
			indexNamed(maps.materials, obj, materialIDs, ns.Materials)
		}
	}
	return maps
}

func indexNamed(into map[namedKey]assetgraph.Object, obj assetgraph.Object, ids map[int64]struct{}, list *NamedList) {
	if list == nil {
		return
	}
	if _, listed := ids[obj.PathID()]; !listed {
		return
	}
	fields, err := obj.Fields()
	if err != nil {
		return
	}
	name := fields.String("m_Name")
	for _, wanted := range list.Names {
		if name == wanted {
			into[namedKey{pathID: obj.PathID(), name: name}] = obj
			return
		}
	}
}

func idSet(list *IDList) map[int64]struct{} {
	out := make(map[int64]struct{})
	if list == nil {
		return out
	}
	for _, id := range list.PathIDs {
		out[id] = struct{}{}
	}
	return out
}

func namedSet(list *NamedList) map[int64]struct{} {
	out := make(map[int64]struct{})
	if list == nil {
		return out
	}
	for _, id := range list.PathIDs {
		out[id] = struct{}{}
	}
	return out
}
