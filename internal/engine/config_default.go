package engine

import "github.com/jbickford/hoopsgm/internal/ratings"

// defaultEra builds the baseline rule set. Values here are the calibration
// surface; any change bumps EraVersion.
func defaultEra() *GameConfig {
	return &GameConfig{
		Era:        "default",
		EraVersion: "2024.3",

		ActionAliases: map[BaseAction]BaseAction{
			ActionHornsSet: ActionPnR,
		},

		OffenseActionWeights: map[OffenseScheme]map[BaseAction]float64{
			OffSpreadHeavyPnR: {
				ActionPnR: 0.30, ActionDrive: 0.12, ActionDHO: 0.06, ActionSpotUp: 0.12,
				ActionKickout: 0.10, ActionExtraPass: 0.06, ActionCut: 0.05, ActionPostUp: 0.04,
				ActionHornsSet: 0.07, ActionTransitionEarly: 0.08,
			},
			OffFiveOut: {
				ActionPnR: 0.16, ActionDrive: 0.18, ActionDHO: 0.10, ActionSpotUp: 0.16,
				ActionKickout: 0.12, ActionExtraPass: 0.07, ActionCut: 0.07, ActionPostUp: 0.02,
				ActionHornsSet: 0.03, ActionTransitionEarly: 0.09,
			},
			OffDriveKick: {
				ActionPnR: 0.14, ActionDrive: 0.26, ActionDHO: 0.05, ActionSpotUp: 0.13,
				ActionKickout: 0.15, ActionExtraPass: 0.07, ActionCut: 0.05, ActionPostUp: 0.03,
				ActionHornsSet: 0.03, ActionTransitionEarly: 0.09,
			},
			OffMotionSplitCut: {
				ActionPnR: 0.12, ActionDrive: 0.10, ActionDHO: 0.11, ActionSpotUp: 0.13,
				ActionKickout: 0.09, ActionExtraPass: 0.10, ActionCut: 0.14, ActionPostUp: 0.06,
				ActionHornsSet: 0.05, ActionTransitionEarly: 0.10,
			},
			OffDHOChicago: {
				ActionPnR: 0.13, ActionDrive: 0.10, ActionDHO: 0.24, ActionSpotUp: 0.11,
				ActionKickout: 0.09, ActionExtraPass: 0.07, ActionCut: 0.07, ActionPostUp: 0.04,
				ActionHornsSet: 0.06, ActionTransitionEarly: 0.09,
			},
			OffPostInsideOut: {
				ActionPnR: 0.10, ActionDrive: 0.09, ActionDHO: 0.05, ActionSpotUp: 0.12,
				ActionKickout: 0.12, ActionExtraPass: 0.07, ActionCut: 0.09, ActionPostUp: 0.22,
				ActionHornsSet: 0.05, ActionTransitionEarly: 0.09,
			},
			OffHornsElbow: {
				ActionPnR: 0.16, ActionDrive: 0.09, ActionDHO: 0.08, ActionSpotUp: 0.11,
				ActionKickout: 0.09, ActionExtraPass: 0.07, ActionCut: 0.08, ActionPostUp: 0.07,
				ActionHornsSet: 0.17, ActionTransitionEarly: 0.08,
			},
			OffTransitionEarly: {
				ActionPnR: 0.14, ActionDrive: 0.13, ActionDHO: 0.05, ActionSpotUp: 0.11,
				ActionKickout: 0.09, ActionExtraPass: 0.06, ActionCut: 0.07, ActionPostUp: 0.03,
				ActionHornsSet: 0.04, ActionTransitionEarly: 0.28,
			},
		},

		DefenseActionMults: map[DefenseScheme]map[BaseAction]float64{
			DefDrop: {
				ActionPnR: 1.06, ActionDrive: 0.96, ActionPostUp: 1.02, ActionCut: 0.97,
			},
			DefSwitchEverything: {
				ActionPnR: 0.94, ActionPostUp: 1.10, ActionDrive: 1.04, ActionDHO: 0.95,
			},
			DefZone: {
				ActionSpotUp: 1.10, ActionExtraPass: 1.10, ActionKickout: 1.06,
				ActionDrive: 0.92, ActionPostUp: 0.95, ActionCut: 1.05,
			},
			DefHedgeShow: {
				ActionPnR: 0.92, ActionDHO: 0.96, ActionDrive: 1.05, ActionCut: 1.06,
			},
			DefGapPack: {
				ActionDrive: 0.90, ActionSpotUp: 1.12, ActionKickout: 1.08, ActionPnR: 1.02,
			},
		},

		OutcomePriors: map[BaseAction][]WeightedOutcome{
			ActionPnR: {
				{ShotOutcome(ShotRim), 0.16},
				{ShotOutcome(ShotMid), 0.10},
				{ShotOutcome(ShotOD3), 0.09},
				{PassOutcome(PassKickout), 0.16},
				{PassOutcome(PassShortRoll), 0.12},
				{PassOutcome(PassSkip), 0.06},
				{TurnoverOutcome(TOBadPass), 0.045},
				{TurnoverOutcome(TOHandle), 0.035},
				{FoulDrawOutcome(FoulTargetRim), 0.07},
				{FoulReachOutcome(), 0.035},
				{ResetOutcome(ResetSwing), 0.12},
				{ResetOutcome(ResetBroken), 0.04},
			},
			ActionDrive: {
				{ShotOutcome(ShotRim), 0.26},
				{ShotOutcome(ShotClose), 0.10},
				{ShotOutcome(ShotOD3), 0.02},
				{PassOutcome(PassKickout), 0.17},
				{PassOutcome(PassExtra), 0.05},
				{TurnoverOutcome(TOHandle), 0.06},
				{TurnoverOutcome(TOBadPass), 0.03},
				{TurnoverOutcome(TOOffensiveFoul), 0.02},
				{FoulDrawOutcome(FoulTargetRim), 0.10},
				{FoulReachOutcome(), 0.02},
				{ResetOutcome(ResetSwing), 0.09},
				{ResetOutcome(ResetBroken), 0.03},
			},
			ActionDHO: {
				{ShotOutcome(ShotOD3), 0.12},
				{ShotOutcome(ShotMid), 0.09},
				{ShotOutcome(ShotRim), 0.10},
				{PassOutcome(PassKickout), 0.10},
				{PassOutcome(PassShortRoll), 0.06},
				{PassOutcome(PassExtra), 0.07},
				{TurnoverOutcome(TOHandle), 0.05},
				{TurnoverOutcome(TOBadPass), 0.04},
				{FoulDrawOutcome(FoulTargetJumper), 0.03},
				{FoulDrawOutcome(FoulTargetRim), 0.04},
				{FoulReachOutcome(), 0.03},
				{ResetOutcome(ResetSwing), 0.14},
				{ResetOutcome(ResetBroken), 0.04},
			},
			ActionSpotUp: {
				{ShotOutcome(ShotCS3), 0.34},
				{ShotOutcome(ShotMid), 0.08},
				{ShotOutcome(ShotRim), 0.08},
				{PassOutcome(PassExtra), 0.12},
				{TurnoverOutcome(TOBadPass), 0.03},
				{TurnoverOutcome(TOHandle), 0.02},
				{FoulDrawOutcome(FoulTargetJumper), 0.035},
				{FoulDrawOutcome(FoulTargetRim), 0.03},
				{FoulReachOutcome(), 0.015},
				{ResetOutcome(ResetSwing), 0.12},
				{ResetOutcome(ResetBroken), 0.03},
			},
			ActionKickout: {
				{ShotOutcome(ShotCS3), 0.30},
				{ShotOutcome(ShotRim), 0.07},
				{ShotOutcome(ShotMid), 0.06},
				{PassOutcome(PassExtra), 0.16},
				{PassOutcome(PassSkip), 0.08},
				{TurnoverOutcome(TOBadPass), 0.04},
				{FoulDrawOutcome(FoulTargetJumper), 0.03},
				{FoulDrawOutcome(FoulTargetRim), 0.025},
				{FoulReachOutcome(), 0.015},
				{ResetOutcome(ResetSwing), 0.12},
				{ResetOutcome(ResetBroken), 0.03},
			},
			ActionExtraPass: {
				{ShotOutcome(ShotCS3), 0.28},
				{ShotOutcome(ShotMid), 0.07},
				{ShotOutcome(ShotRim), 0.08},
				{PassOutcome(PassSkip), 0.10},
				{PassOutcome(PassExtra), 0.08},
				{TurnoverOutcome(TOBadPass), 0.04},
				{FoulDrawOutcome(FoulTargetJumper), 0.025},
				{FoulDrawOutcome(FoulTargetRim), 0.03},
				{FoulReachOutcome(), 0.01},
				{ResetOutcome(ResetSwing), 0.14},
				{ResetOutcome(ResetBroken), 0.03},
			},
			ActionCut: {
				{ShotOutcome(ShotRim), 0.38},
				{ShotOutcome(ShotClose), 0.12},
				{PassOutcome(PassExtra), 0.06},
				{TurnoverOutcome(TOBadPass), 0.06},
				{TurnoverOutcome(TOHandle), 0.02},
				{FoulDrawOutcome(FoulTargetRim), 0.09},
				{FoulReachOutcome(), 0.02},
				{ResetOutcome(ResetSwing), 0.18},
				{ResetOutcome(ResetBroken), 0.05},
			},
			ActionPostUp: {
				{ShotOutcome(ShotPost), 0.30},
				{ShotOutcome(ShotClose), 0.08},
				{ShotOutcome(ShotRim), 0.06},
				{PassOutcome(PassKickout), 0.10},
				{PassOutcome(PassSkip), 0.05},
				{TurnoverOutcome(TOHandle), 0.04},
				{TurnoverOutcome(TOBadPass), 0.04},
				{TurnoverOutcome(TOOffensiveFoul), 0.025},
				{FoulDrawOutcome(FoulTargetPost), 0.10},
				{FoulReachOutcome(), 0.025},
				{ResetOutcome(ResetSwing), 0.12},
				{ResetOutcome(ResetBroken), 0.03},
			},
			ActionTransitionEarly: {
				{ShotOutcome(ShotRim), 0.30},
				{ShotOutcome(ShotCS3), 0.12},
				{ShotOutcome(ShotClose), 0.06},
				{ShotOutcome(ShotOD3), 0.04},
				{PassOutcome(PassKickout), 0.10},
				{PassOutcome(PassExtra), 0.05},
				{TurnoverOutcome(TOHandle), 0.06},
				{TurnoverOutcome(TOBadPass), 0.06},
				{FoulDrawOutcome(FoulTargetRim), 0.09},
				{FoulReachOutcome(), 0.02},
				{ResetOutcome(ResetSwing), 0.07},
				{ResetOutcome(ResetBroken), 0.03},
			},
		},

		OffenseProfiles: map[string]Profile{
			"SHOT_RIM":         {ratings.FinRim: 0.45, ratings.FinContact: 0.25, ratings.RollFinish: 0.15, ratings.Physical: 0.15},
			"SHOT_CLOSE":       {ratings.FinRim: 0.30, ratings.ShotMid: 0.30, ratings.PostScore: 0.20, ratings.CutTiming: 0.20},
			"SHOT_MID":         {ratings.ShotMid: 0.55, ratings.PullupThreat: 0.30, ratings.Endurance: 0.15},
			"SHOT_3_CS":        {ratings.Shot3CS: 0.65, ratings.MoveShoot: 0.20, ratings.PopSpace: 0.15},
			"SHOT_3_OD":        {ratings.Shot3OD: 0.55, ratings.PullupThreat: 0.30, ratings.HandleSafe: 0.15},
			"SHOT_POST":        {ratings.PostScore: 0.60, ratings.SealPower: 0.25, ratings.FinContact: 0.15},
			"PASS_KICKOUT":     {ratings.PassCreate: 0.40, ratings.PnRRead: 0.30, ratings.DriveCreate: 0.30},
			"PASS_SKIP":        {ratings.PassCreate: 0.50, ratings.PnRRead: 0.30, ratings.PostPass: 0.20},
			"PASS_EXTRA":       {ratings.PassCreate: 0.45, ratings.HandleSafe: 0.30, ratings.PnRRead: 0.25},
			"PASS_SHORTROLL":   {ratings.ShortRollPlay: 0.55, ratings.PassCreate: 0.25, ratings.RollFinish: 0.20},
			"TO_BAD_PASS":      {ratings.HandleSafe: 0.40, ratings.PassCreate: 0.35, ratings.PnRRead: 0.25},
			"TO_HANDLE":        {ratings.HandleSafe: 0.55, ratings.DriveCreate: 0.25, ratings.Physical: 0.20},
			"TO_OFF_FOUL":      {ratings.DriveCreate: 0.35, ratings.HandleSafe: 0.35, ratings.CutTiming: 0.30},
			"FOUL_DRAW_JUMPER": {ratings.PullupThreat: 0.40, ratings.Shot3OD: 0.30, ratings.ShotMid: 0.30},
			"FOUL_DRAW_POST":   {ratings.PostScore: 0.45, ratings.SealPower: 0.35, ratings.FinContact: 0.20},
			"FOUL_DRAW_RIM":    {ratings.FinContact: 0.45, ratings.FinRim: 0.30, ratings.DriveCreate: 0.25},
			"FOUL_REACH_TRAP":  {ratings.HandleSafe: 0.50, ratings.DriveCreate: 0.30, ratings.Endurance: 0.20},
			"RESET_SWING":      {ratings.PassCreate: 0.35, ratings.HandleSafe: 0.35, ratings.PnRRead: 0.30},
			"RESET_BROKEN":     {ratings.PassCreate: 0.35, ratings.HandleSafe: 0.35, ratings.PnRRead: 0.30},
		},

		DefenseProfiles: map[string]Profile{
			"SHOT_RIM":         {ratings.DefRim: 0.50, ratings.DefHelp: 0.30, ratings.Physical: 0.20},
			"SHOT_CLOSE":       {ratings.DefRim: 0.30, ratings.DefPost: 0.30, ratings.DefHelp: 0.40},
			"SHOT_MID":         {ratings.DefPOA: 0.45, ratings.DefHelp: 0.35, ratings.Physical: 0.20},
			"SHOT_3_CS":        {ratings.DefHelp: 0.45, ratings.DefPOA: 0.35, ratings.Endurance: 0.20},
			"SHOT_3_OD":        {ratings.DefPOA: 0.55, ratings.DefHelp: 0.25, ratings.Physical: 0.20},
			"SHOT_POST":        {ratings.DefPost: 0.55, ratings.DefRim: 0.25, ratings.Physical: 0.20},
			"PASS_KICKOUT":     {ratings.DefHelp: 0.40, ratings.DefSteal: 0.35, ratings.DefPOA: 0.25},
			"PASS_SKIP":        {ratings.DefSteal: 0.40, ratings.DefHelp: 0.40, ratings.Endurance: 0.20},
			"PASS_EXTRA":       {ratings.DefSteal: 0.35, ratings.DefHelp: 0.45, ratings.DefPOA: 0.20},
			"PASS_SHORTROLL":   {ratings.DefRim: 0.35, ratings.DefHelp: 0.40, ratings.DefSteal: 0.25},
			"TO_BAD_PASS":      {ratings.DefSteal: 0.55, ratings.DefHelp: 0.25, ratings.DefPOA: 0.20},
			"TO_HANDLE":        {ratings.DefPOA: 0.45, ratings.DefSteal: 0.40, ratings.Physical: 0.15},
			"TO_OFF_FOUL":      {ratings.DefPost: 0.35, ratings.Physical: 0.35, ratings.DefHelp: 0.30},
			"FOUL_DRAW_JUMPER": {ratings.DefPOA: 0.50, ratings.DefHelp: 0.30, ratings.Endurance: 0.20},
			"FOUL_DRAW_POST":   {ratings.DefPost: 0.55, ratings.Physical: 0.25, ratings.DefHelp: 0.20},
			"FOUL_DRAW_RIM":    {ratings.DefRim: 0.45, ratings.DefHelp: 0.30, ratings.Physical: 0.25},
			"FOUL_REACH_TRAP":  {ratings.DefSteal: 0.45, ratings.DefPOA: 0.35, ratings.DefHelp: 0.20},
			"RESET_SWING":      {ratings.DefPOA: 0.40, ratings.DefHelp: 0.40, ratings.Endurance: 0.20},
			"RESET_BROKEN":     {ratings.DefPOA: 0.40, ratings.DefHelp: 0.40, ratings.Endurance: 0.20},
		},

		ShotBase: map[ShotKind]float64{
			ShotRim:   0.620,
			ShotClose: 0.455,
			ShotMid:   0.420,
			ShotCS3:   0.365,
			ShotOD3:   0.335,
			ShotPost:  0.450,
		},

		PassBase: map[PassKind]float64{
			PassKickout:   0.965,
			PassSkip:      0.940,
			PassExtra:     0.975,
			PassShortRoll: 0.950,
		},

		Corner3GivenAction: map[BaseAction]float64{
			ActionPnR:             0.32,
			ActionDrive:           0.44,
			ActionDHO:             0.25,
			ActionSpotUp:          0.38,
			ActionKickout:         0.45,
			ActionExtraPass:       0.42,
			ActionCut:             0.20,
			ActionPostUp:          0.48,
			ActionTransitionEarly: 0.35,
		},

		SchemeOutcomeMults: map[DefenseScheme]map[string]float64{
			DefDrop: {
				"SHOT_MID": 1.12, "SHOT_3_OD": 1.08, "SHOT_RIM": 0.92,
				"FOUL_DRAW_RIM": 0.93, "PASS_SHORTROLL": 1.05,
			},
			DefSwitchEverything: {
				"SHOT_3_CS": 0.93, "PASS_SKIP": 0.95, "TO_HANDLE": 1.08,
				"SHOT_POST": 1.08, "FOUL_REACH_TRAP": 1.05,
			},
			DefZone: {
				"SHOT_3_CS": 1.10, "PASS_SKIP": 1.12, "SHOT_RIM": 0.94,
				"TO_BAD_PASS": 1.10, "SHOT_MID": 1.04,
			},
			DefHedgeShow: {
				"TO_BAD_PASS": 1.12, "PASS_SHORTROLL": 1.15, "SHOT_3_OD": 0.90,
				"FOUL_REACH_TRAP": 1.08,
			},
			DefGapPack: {
				"SHOT_RIM": 0.90, "SHOT_3_CS": 1.12, "TO_HANDLE": 0.95, "SHOT_MID": 1.06,
			},
		},

		OffSchemeOutcomeMults: map[OffenseScheme]map[string]float64{
			OffSpreadHeavyPnR:  {"SHOT_3_OD": 1.06, "PASS_SHORTROLL": 1.05, "SHOT_RIM": 1.03},
			OffFiveOut:         {"SHOT_3_CS": 1.08, "SHOT_RIM": 1.04, "SHOT_MID": 0.92, "SHOT_POST": 0.88},
			OffDriveKick:       {"SHOT_RIM": 1.06, "SHOT_3_CS": 1.05, "FOUL_DRAW_RIM": 1.06, "SHOT_MID": 0.90},
			OffMotionSplitCut:  {"SHOT_3_CS": 1.04, "PASS_EXTRA": 1.06, "SHOT_RIM": 1.02, "TO_BAD_PASS": 1.03},
			OffDHOChicago:      {"SHOT_3_OD": 1.05, "SHOT_MID": 1.04, "PASS_EXTRA": 1.03},
			OffPostInsideOut:   {"SHOT_POST": 1.10, "SHOT_3_CS": 1.05, "FOUL_DRAW_POST": 1.08, "SHOT_3_OD": 0.92},
			OffHornsElbow:      {"SHOT_MID": 1.06, "PASS_SHORTROLL": 1.06, "SHOT_POST": 1.03},
			OffTransitionEarly: {"SHOT_RIM": 1.06, "SHOT_3_CS": 1.03, "TO_HANDLE": 1.06, "FOUL_DRAW_RIM": 1.04},
		},

		TacticAlphas: map[OffenseScheme]AlphaPair{
			OffSpreadHeavyPnR:  {Action: 0.40, Outcome: 0.70},
			OffFiveOut:         {Action: 0.45, Outcome: 0.65},
			OffDriveKick:       {Action: 0.50, Outcome: 0.70},
			OffMotionSplitCut:  {Action: 0.45, Outcome: 0.60},
			OffDHOChicago:      {Action: 0.45, Outcome: 0.65},
			OffPostInsideOut:   {Action: 0.50, Outcome: 0.70},
			OffHornsElbow:      {Action: 0.40, Outcome: 0.60},
			OffTransitionEarly: {Action: 0.55, Outcome: 0.70},
		},

		ActionTimeCosts: map[BaseAction]TimeRange{
			ActionPnR:             {7, 13},
			ActionDrive:           {5, 10},
			ActionDHO:             {6, 12},
			ActionSpotUp:          {4, 9},
			ActionKickout:         {4, 8},
			ActionExtraPass:       {3, 7},
			ActionCut:             {5, 10},
			ActionPostUp:          {8, 14},
			ActionHornsSet:        {8, 14},
			ActionTransitionEarly: {3, 7},
		},

		PassTimeCosts: map[PassKind]TimeRange{
			PassKickout:   {1.2, 2.8},
			PassSkip:      {1.5, 3.0},
			PassExtra:     {1.0, 2.4},
			PassShortRoll: {1.4, 3.0},
		},

		ActionFatigue: map[BaseAction]float64{
			ActionPnR:             1.15,
			ActionDrive:           1.25,
			ActionDHO:             1.10,
			ActionSpotUp:          0.90,
			ActionKickout:         0.95,
			ActionExtraPass:       0.90,
			ActionCut:             1.15,
			ActionPostUp:          1.10,
			ActionHornsSet:        1.05,
			ActionTransitionEarly: 1.45,
		},

		ActionStyleCoefs: map[BaseAction]map[StyleFeature]float64{
			ActionPnR: {
				FeatBHPnRCraft: 0.30, FeatScreenerRollGravity: 0.18,
				FeatScreenerShortRoll: 0.10, FeatTeamSpacing: 0.08,
			},
			ActionDrive: {
				FeatBHDrivePressure: 0.32, FeatRimPressure: 0.15,
				FeatTeamSpacing: 0.10, FeatDefRimProtect: -0.12,
			},
			ActionDHO: {
				FeatTeamMovement: 0.22, FeatBHPullupThreat: 0.14, FeatSafeHandle: 0.08,
			},
			ActionSpotUp: {
				FeatTeamSpacing: 0.30, FeatBHPassSkill: 0.10, FeatDefHelpCloseout: -0.08,
			},
			ActionKickout: {
				FeatBHDrivePressure: 0.18, FeatTeamSpacing: 0.18, FeatBHPassSkill: 0.12,
			},
			ActionExtraPass: {
				FeatTeamMovement: 0.15, FeatBHPassSkill: 0.15, FeatTeamSpacing: 0.08,
			},
			ActionCut: {
				FeatTeamCutThreat: 0.28, FeatPostPlaymaking: 0.10,
				FeatTeamMovement: 0.10, FeatDefRimProtect: -0.08,
			},
			ActionPostUp: {
				FeatPostGravity: 0.34, FeatPostPlaymaking: 0.10, FeatDefPostWall: -0.12,
			},
			ActionHornsSet: {
				FeatScreenerPopGravity: 0.18, FeatBHPnRCraft: 0.16, FeatScreenerShortRoll: 0.10,
			},
			ActionTransitionEarly: {
				FeatPacePush: 0.34, FeatRimPressure: 0.10,
				FeatOffGlass: -0.06, FeatDefGlass: -0.08,
			},
		},

		OutcomeStyleCoefs: map[string]map[StyleFeature]float64{
			"SHOT_3_CS":        {FeatTeamSpacing: 0.25, FeatBHPassSkill: 0.10, FeatDefHelpCloseout: -0.15},
			"SHOT_3_OD":        {FeatBHPullupThreat: 0.28, FeatDefPOAContain: -0.12},
			"SHOT_MID":         {FeatBHPullupThreat: 0.15, FeatDefPOAContain: -0.06},
			"SHOT_RIM":         {FeatRimPressure: 0.22, FeatScreenerRollGravity: 0.12, FeatDefRimProtect: -0.20},
			"SHOT_CLOSE":       {FeatRimPressure: 0.10, FeatTeamCutThreat: 0.08, FeatDefRimProtect: -0.08},
			"SHOT_POST":        {FeatPostGravity: 0.26, FeatDefPostWall: -0.18},
			"PASS_KICKOUT":     {FeatBHPassSkill: 0.18, FeatTeamSpacing: 0.12, FeatDefHelpCloseout: 0.06},
			"PASS_SKIP":        {FeatBHPassSkill: 0.15, FeatDefHelpCloseout: 0.08},
			"PASS_EXTRA":       {FeatTeamMovement: 0.15, FeatBHPassSkill: 0.10},
			"PASS_SHORTROLL":   {FeatScreenerShortRoll: 0.25, FeatDefPOAContain: 0.06},
			"TO_BAD_PASS":      {FeatSafeHandle: -0.22, FeatDefStealPressure: 0.20},
			"TO_HANDLE":        {FeatSafeHandle: -0.25, FeatDefPOAContain: 0.12, FeatDefStealPressure: 0.10},
			"TO_OFF_FOUL":      {FeatRimPressure: 0.06, FeatDefPostWall: 0.08},
			"FOUL_DRAW_RIM":    {FeatRimPressure: 0.15, FeatDefRimProtect: 0.06},
			"FOUL_DRAW_POST":   {FeatPostGravity: 0.15},
			"FOUL_DRAW_JUMPER": {FeatBHPullupThreat: 0.10},
			"FOUL_REACH_TRAP":  {FeatDefStealPressure: 0.15, FeatSafeHandle: -0.06},
			"RESET_SWING":      {FeatTeamSpacing: -0.08, FeatBHPassSkill: -0.10, FeatDefPOAContain: 0.10},
			"RESET_BROKEN":     {FeatSafeHandle: -0.10, FeatDefHelpCloseout: 0.08},
		},

		FoulTargetProbs: map[BaseAction]map[FoulTarget]float64{
			ActionPnR:             {FoulTargetJumper: 0.25, FoulTargetPost: 0.05, FoulTargetRim: 0.70},
			ActionDrive:           {FoulTargetJumper: 0.08, FoulTargetPost: 0.02, FoulTargetRim: 0.90},
			ActionDHO:             {FoulTargetJumper: 0.40, FoulTargetPost: 0.05, FoulTargetRim: 0.55},
			ActionSpotUp:          {FoulTargetJumper: 0.70, FoulTargetPost: 0.02, FoulTargetRim: 0.28},
			ActionKickout:         {FoulTargetJumper: 0.65, FoulTargetPost: 0.03, FoulTargetRim: 0.32},
			ActionExtraPass:       {FoulTargetJumper: 0.60, FoulTargetPost: 0.05, FoulTargetRim: 0.35},
			ActionCut:             {FoulTargetJumper: 0.05, FoulTargetPost: 0.10, FoulTargetRim: 0.85},
			ActionPostUp:          {FoulTargetJumper: 0.06, FoulTargetPost: 0.70, FoulTargetRim: 0.24},
			ActionTransitionEarly: {FoulTargetJumper: 0.10, FoulTargetPost: 0.03, FoulTargetRim: 0.87},
		},

		DefenseRoleProfiles: map[DefenseScheme][]DefenseRoleProfile{
			DefDrop: {
				{"RimAnchor", Profile{ratings.DefRim: 0.55, ratings.DefPost: 0.25, ratings.RebDR: 0.20}},
				{"POAStopper", Profile{ratings.DefPOA: 0.60, ratings.Physical: 0.20, ratings.Endurance: 0.20}},
				{"Chaser", Profile{ratings.DefPOA: 0.40, ratings.DefHelp: 0.30, ratings.Endurance: 0.30}},
				{"Helper", Profile{ratings.DefHelp: 0.55, ratings.DefSteal: 0.25, ratings.Physical: 0.20}},
				{"GlassCleaner", Profile{ratings.RebDR: 0.55, ratings.DefPost: 0.25, ratings.Physical: 0.20}},
			},
			DefSwitchEverything: {
				{"POASwitch", Profile{ratings.DefPOA: 0.45, ratings.Physical: 0.30, ratings.Endurance: 0.25}},
				{"WingSwitch", Profile{ratings.DefPOA: 0.40, ratings.DefHelp: 0.30, ratings.Physical: 0.30}},
				{"BigSwitch", Profile{ratings.DefPOA: 0.30, ratings.DefPost: 0.35, ratings.Physical: 0.35}},
				{"HelpSwitch", Profile{ratings.DefHelp: 0.45, ratings.DefSteal: 0.30, ratings.Endurance: 0.25}},
				{"GlassSwitch", Profile{ratings.RebDR: 0.45, ratings.DefPost: 0.30, ratings.Physical: 0.25}},
			},
			DefZone: {
				{"ZoneTop", Profile{ratings.DefSteal: 0.35, ratings.DefPOA: 0.35, ratings.Endurance: 0.30}},
				{"ZoneWingStrong", Profile{ratings.DefHelp: 0.40, ratings.Endurance: 0.35, ratings.DefPOA: 0.25}},
				{"ZoneWingWeak", Profile{ratings.DefHelp: 0.45, ratings.DefSteal: 0.30, ratings.Endurance: 0.25}},
				{"ZoneMiddle", Profile{ratings.DefPost: 0.40, ratings.DefHelp: 0.35, ratings.DefRim: 0.25}},
				{"ZoneAnchor", Profile{ratings.DefRim: 0.50, ratings.RebDR: 0.30, ratings.DefPost: 0.20}},
			},
			DefHedgeShow: {
				{"HedgeBig", Profile{ratings.DefHelp: 0.35, ratings.Physical: 0.35, ratings.Endurance: 0.30}},
				{"POAPresser", Profile{ratings.DefPOA: 0.50, ratings.DefSteal: 0.30, ratings.Endurance: 0.20}},
				{"RotatorLow", Profile{ratings.DefRim: 0.40, ratings.DefHelp: 0.40, ratings.Physical: 0.20}},
				{"RotatorWeak", Profile{ratings.DefHelp: 0.45, ratings.DefSteal: 0.30, ratings.Endurance: 0.25}},
				{"GlassCleaner", Profile{ratings.RebDR: 0.50, ratings.DefPost: 0.30, ratings.Physical: 0.20}},
			},
			DefGapPack: {
				{"GapDigger", Profile{ratings.DefSteal: 0.40, ratings.DefHelp: 0.35, ratings.Endurance: 0.25}},
				{"POAContain", Profile{ratings.DefPOA: 0.55, ratings.Physical: 0.25, ratings.Endurance: 0.20}},
				{"PaintPacker", Profile{ratings.DefRim: 0.40, ratings.DefPost: 0.35, ratings.Physical: 0.25}},
				{"WeakHelper", Profile{ratings.DefHelp: 0.50, ratings.DefSteal: 0.25, ratings.Endurance: 0.25}},
				{"GlassCleaner", Profile{ratings.RebDR: 0.55, ratings.DefPost: 0.25, ratings.Physical: 0.20}},
			},
		},

		Knobs: Knobs{
			LogisticSlope:   55.0,
			PMin:            0.03,
			PMax:            0.93,
			VarianceMin:     0.94,
			VarianceMax:     1.06,
			RimBaseMult:     1.0,
			MidBaseMult:     1.0,
			ThreeBaseMult:   1.0,
			FatigueLogitMax: 0.25,

			MixDefScoreForShot: 0.50,
			QualityLogitScale:  0.10,

			ActionMultLo:  0.78,
			ActionMultHi:  1.28,
			OutcomeMultLo: 0.65,
			OutcomeMultHi: 1.45,

			PassSigmoidSlope: 6.0,
			PassTOMid:        -1.35,
			PassResetMid:     -0.55,
			CarryPosLogit:    0.30,
			CarryNegLogit:    -0.22,

			FoulContactHard:     0.22,
			FoulContactNormal:   0.30,
			FoulContactSoft:     0.40,
			BonusThreshold:      5,
			FoulOutLimit:        6,
			BonusNonShootingFTs: false,
			DeadBallTimeCost:    1.0,

			QuarterLengthSec:   720,
			OvertimeLengthSec:  300,
			RegulationQuarters: 4,
			ShotClockSec:       24,
			FoulResetSec:       14,
			OrbResetSec:        14,
			TempoMult:          1.0,

			MaxSteps:           7,
			BailoutTimeCost:    0.75,
			ResetTimeCost:      2.6,
			PassChainForceSpot: 3,
			InboundTOVBase:     0.010,
			InboundTOVMin:      0.003,
			InboundTOVMax:      0.06,
			TransitionBoost:    1.9,
			FastbreakShotClock: 16,

			FatigueBasePerSec:    0.00028,
			FatigueEnduranceSave: 0.0030,
			RestBetweenPeriods:   0.12,
			RestPreOvertime:      0.08,
			BenchRecoverPerSec:   0.0009,

			OTJumpball:           true,
			JumpballSigmoidScale: 12.0,
		},
	}
}
