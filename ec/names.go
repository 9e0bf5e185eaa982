// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

import (
	"fmt"
	"strconv"
	"strings"
)

var CommandNames = map[uint16]string{
	EC_CMD_PROTO_VERSION:              "PROTO_VERSION",
	EC_CMD_HELLO:                      "HELLO",
	EC_CMD_GET_VERSION:                "GET_VERSION",
	EC_CMD_READ_TEST:                  "READ_TEST",
	EC_CMD_GET_BUILD_INFO:             "GET_BUILD_INFO",
	EC_CMD_GET_CHIP_INFO:              "GET_CHIP_INFO",
	EC_CMD_GET_BOARD_VERSION:          "GET_BOARD_VERSION",
	EC_CMD_READ_MEMMAP:                "READ_MEMMAP",
	EC_CMD_GET_CMD_VERSIONS:           "GET_CMD_VERSIONS",
	EC_CMD_GET_COMMS_STATUS:           "GET_COMMS_STATUS",
	EC_CMD_TEST_PROTOCOL:              "TEST_PROTOCOL",
	EC_CMD_GET_PROTOCOL_INFO:          "GET_PROTOCOL_INFO",
	EC_CMD_GSV_PAUSE_IN_S5:            "GSV_PAUSE_IN_S5",
	EC_CMD_GET_FEATURES:               "GET_FEATURES",
	EC_CMD_FLASH_INFO:                 "FLASH_INFO",
	EC_CMD_FLASH_READ:                 "FLASH_READ",
	EC_CMD_FLASH_WRITE:                "FLASH_WRITE",
	EC_CMD_FLASH_ERASE:                "FLASH_ERASE",
	EC_CMD_FLASH_PROTECT:              "FLASH_PROTECT",
	EC_CMD_PWM_GET_FAN_TARGET_RPM:     "PWM_GET_FAN_TARGET_RPM",
	EC_CMD_PWM_SET_FAN_TARGET_RPM:     "PWM_SET_FAN_TARGET_RPM",
	EC_CMD_PWM_GET_KEYBOARD_BACKLIGHT: "PWM_GET_KEYBOARD_BACKLIGHT",
	EC_CMD_PWM_SET_KEYBOARD_BACKLIGHT: "PWM_SET_KEYBOARD_BACKLIGHT",
	EC_CMD_PWM_SET_FAN_DUTY:           "PWM_SET_FAN_DUTY",
	EC_CMD_MOTION_SENSE_CMD:           "MOTION_SENSE_CMD",
	EC_CMD_MKBP_STATE:                 "MKBP_STATE",
	EC_CMD_MKBP_INFO:                  "MKBP_INFO",
	EC_CMD_MKBP_SIMULATE_KEY:          "MKBP_SIMULATE_KEY",
	EC_CMD_GET_KEYBOARD_ID:            "GET_KEYBOARD_ID",
	EC_CMD_MKBP_SET_CONFIG:            "MKBP_SET_CONFIG",
	EC_CMD_MKBP_GET_CONFIG:            "MKBP_GET_CONFIG",
	EC_CMD_KEYSCAN_SEQ_CTRL:           "KEYSCAN_SEQ_CTRL",
	EC_CMD_GET_NEXT_EVENT:             "GET_NEXT_EVENT",
	EC_CMD_KEYBOARD_FACTORY_TEST:      "KEYBOARD_FACTORY_TEST",
	EC_CMD_MKBP_WAKE_MASK:             "MKBP_WAKE_MASK",
	EC_CMD_HOST_EVENT_GET_B:           "HOST_EVENT_GET_B",
	EC_CMD_HOST_EVENT_GET_SMI_MASK:    "HOST_EVENT_GET_SMI_MASK",
	EC_CMD_HOST_EVENT_GET_SCI_MASK:    "HOST_EVENT_GET_SCI_MASK",
	EC_CMD_HOST_EVENT_SET_SMI_MASK:    "HOST_EVENT_SET_SMI_MASK",
	EC_CMD_HOST_EVENT_SET_SCI_MASK:    "HOST_EVENT_SET_SCI_MASK",
	EC_CMD_HOST_EVENT_CLEAR:           "HOST_EVENT_CLEAR",
	EC_CMD_HOST_EVENT_GET_WAKE_MASK:   "HOST_EVENT_GET_WAKE_MASK",
	EC_CMD_HOST_EVENT_SET_WAKE_MASK:   "HOST_EVENT_SET_WAKE_MASK",
	EC_CMD_HOST_EVENT_CLEAR_B:         "HOST_EVENT_CLEAR_B",
	EC_CMD_HOST_EVENT:                 "HOST_EVENT",
	EC_CMD_HIBERNATION_DELAY:          "HIBERNATION_DELAY",
	EC_CMD_HOST_SLEEP_EVENT:           "HOST_SLEEP_EVENT",
	EC_CMD_USB_PD_FW_UPDATE:           "USB_PD_FW_UPDATE",
}

// CommandName returns the name of a known command, otherwise its number.
func CommandName(code uint16) string {
	if s, found := CommandNames[code]; found {
		return s
	}
	return fmt.Sprintf("%#06x", code)
}

// ParseCommand accepts a command number in any base or a name from
// CommandNames, with or without the EC_CMD_ prefix, in any case.
func ParseCommand(s string) (uint16, error) {
	if u, err := strconv.ParseUint(s, 0, 16); err == nil {
		return uint16(u), nil
	}
	name := strings.TrimPrefix(strings.ToUpper(s), "EC_CMD_")
	for code, v := range CommandNames {
		if v == name {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown command", s)
}

var FeatureNames = map[uint]string{
	EC_FEATURE_LIMITED:                        "LIMITED",
	EC_FEATURE_FLASH:                          "FLASH",
	EC_FEATURE_PWM_FAN:                        "PWM_FAN",
	EC_FEATURE_PWM_KEYB:                       "PWM_KEYB",
	EC_FEATURE_LIGHTBAR:                       "LIGHTBAR",
	EC_FEATURE_LED:                            "LED",
	EC_FEATURE_MOTION_SENSE:                   "MOTION_SENSE",
	EC_FEATURE_KEYB:                           "KEYB",
	EC_FEATURE_PSTORE:                         "PSTORE",
	EC_FEATURE_PORT80:                         "PORT80",
	EC_FEATURE_THERMAL:                        "THERMAL",
	EC_FEATURE_BKLIGHT_SWITCH:                 "BKLIGHT_SWITCH",
	EC_FEATURE_WIFI_SWITCH:                    "WIFI_SWITCH",
	EC_FEATURE_HOST_EVENTS:                    "HOST_EVENTS",
	EC_FEATURE_GPIO:                           "GPIO",
	EC_FEATURE_I2C:                            "I2C",
	EC_FEATURE_CHARGER:                        "CHARGER",
	EC_FEATURE_BATTERY:                        "BATTERY",
	EC_FEATURE_SMART_BATTERY:                  "SMART_BATTERY",
	EC_FEATURE_HANG_DETECT:                    "HANG_DETECT",
	EC_FEATURE_PMU:                            "PMU",
	EC_FEATURE_SUB_MCU:                        "SUB_MCU",
	EC_FEATURE_USB_PD:                         "USB_PD",
	EC_FEATURE_USB_MUX:                        "USB_MUX",
	EC_FEATURE_MOTION_SENSE_FIFO:              "MOTION_SENSE_FIFO",
	EC_FEATURE_VSTORE:                         "VSTORE",
	EC_FEATURE_USBC_SS_MUX_VIRTUAL:            "USBC_SS_MUX_VIRTUAL",
	EC_FEATURE_RTC:                            "RTC",
	EC_FEATURE_FINGERPRINT:                    "FINGERPRINT",
	EC_FEATURE_TOUCHPAD:                       "TOUCHPAD",
	EC_FEATURE_RWSIG:                          "RWSIG",
	EC_FEATURE_DEVICE_EVENT:                   "DEVICE_EVENT",
	EC_FEATURE_UNIFIED_WAKE_MASKS:             "UNIFIED_WAKE_MASKS",
	EC_FEATURE_HOST_EVENT64:                   "HOST_EVENT64",
	EC_FEATURE_EXEC_IN_RAM:                    "EXEC_IN_RAM",
	EC_FEATURE_CEC:                            "CEC",
	EC_FEATURE_MOTION_SENSE_TIGHT_TIMESTAMPS:  "MOTION_SENSE_TIGHT_TIMESTAMPS",
	EC_FEATURE_REFINED_TABLET_MODE_HYSTERESIS: "REFINED_TABLET_MODE_HYSTERESIS",
	EC_FEATURE_SCP:                            "SCP",
	EC_FEATURE_ISH:                            "ISH",
	EC_FEATURE_TYPEC_CMD:                      "TYPEC_CMD",
	EC_FEATURE_TYPEC_REQUIRE_AP_MODE_ENTRY:    "TYPEC_REQUIRE_AP_MODE_ENTRY",
	EC_FEATURE_TYPEC_MUX_REQUIRE_AP_ACK:       "TYPEC_MUX_REQUIRE_AP_ACK",
}

// Names of the features present, in bit order.
func (f Features) Names() []string {
	var names []string
	for bit := uint(0); bit < 64; bit++ {
		if !f.Has(bit) {
			continue
		}
		if s, found := FeatureNames[bit]; found {
			names = append(names, s)
		} else {
			names = append(names, fmt.Sprint("FEATURE_", bit))
		}
	}
	return names
}

var hostEventNames = []string{
	EC_HOST_EVENT_LID_CLOSED:                  "LID_CLOSED",
	EC_HOST_EVENT_LID_OPEN:                    "LID_OPEN",
	EC_HOST_EVENT_POWER_BUTTON:                "POWER_BUTTON",
	EC_HOST_EVENT_AC_CONNECTED:                "AC_CONNECTED",
	EC_HOST_EVENT_AC_DISCONNECTED:             "AC_DISCONNECTED",
	EC_HOST_EVENT_BATTERY_LOW:                 "BATTERY_LOW",
	EC_HOST_EVENT_BATTERY_CRITICAL:            "BATTERY_CRITICAL",
	EC_HOST_EVENT_BATTERY:                     "BATTERY",
	EC_HOST_EVENT_THERMAL_THRESHOLD:           "THERMAL_THRESHOLD",
	EC_HOST_EVENT_THERMAL_OVERLOAD:            "THERMAL_OVERLOAD",
	EC_HOST_EVENT_THERMAL:                     "THERMAL",
	EC_HOST_EVENT_USB_CHARGER:                 "USB_CHARGER",
	EC_HOST_EVENT_KEY_PRESSED:                 "KEY_PRESSED",
	EC_HOST_EVENT_INTERFACE_READY:             "INTERFACE_READY",
	EC_HOST_EVENT_KEYBOARD_RECOVERY:           "KEYBOARD_RECOVERY",
	EC_HOST_EVENT_THERMAL_SHUTDOWN:            "THERMAL_SHUTDOWN",
	EC_HOST_EVENT_BATTERY_SHUTDOWN:            "BATTERY_SHUTDOWN",
	EC_HOST_EVENT_THROTTLE_START:              "THROTTLE_START",
	EC_HOST_EVENT_THROTTLE_STOP:               "THROTTLE_STOP",
	EC_HOST_EVENT_HANG_DETECT:                 "HANG_DETECT",
	EC_HOST_EVENT_HANG_REBOOT:                 "HANG_REBOOT",
	EC_HOST_EVENT_PD_MCU:                      "PD_MCU",
	EC_HOST_EVENT_BATTERY_STATUS:              "BATTERY_STATUS",
	EC_HOST_EVENT_PANIC:                       "PANIC",
	EC_HOST_EVENT_KEYBOARD_FASTBOOT:           "KEYBOARD_FASTBOOT",
	EC_HOST_EVENT_RTC:                         "RTC",
	EC_HOST_EVENT_MKBP:                        "MKBP",
	EC_HOST_EVENT_USB_MUX:                     "USB_MUX",
	EC_HOST_EVENT_MODE_CHANGE:                 "MODE_CHANGE",
	EC_HOST_EVENT_KEYBOARD_RECOVERY_HW_REINIT: "KEYBOARD_RECOVERY_HW_REINIT",
	EC_HOST_EVENT_WOV:                         "WOV",
	EC_HOST_EVENT_INVALID:                     "INVALID",
}

func HostEventName(code uint) string {
	if code > 0 && code < uint(len(hostEventNames)) {
		return hostEventNames[code]
	}
	return fmt.Sprint("HOST_EVENT_", code)
}
